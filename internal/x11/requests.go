package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
)

// SendRequest sends a 32-bit format client message about windowID to the
// root window, the way pagers and applications address the window manager.
// Missing data words are zero-filled.
//
// We build the message manually because the xgbutil ewmh request helpers
// panic on this library version (uint vs int type assertion).
func (c *Connection) SendRequest(windowID xproto.Window, messageType string, data ...uint32) error {
	atom, err := xprop.Atm(c.XUtil, messageType)
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", messageType, err)
	}

	if len(data) > 5 {
		return fmt.Errorf("client message carries at most 5 words, got %d", len(data))
	}
	words := make([]uint32, 5)
	copy(words, data)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(words),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// Atom interns an atom name.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	return xprop.Atm(c.XUtil, name)
}

// FindWindowByTitle returns the first window whose title contains
// substring. It searches the EWMH client list when a window manager publishes
// one, otherwise the children of the root window.
func (c *Connection) FindWindowByTitle(substring string) (uint32, error) {
	if substring == "" {
		return 0, fmt.Errorf("empty title")
	}
	candidates, err := ewmh.ClientListGet(c.XUtil)
	if err != nil || len(candidates) == 0 {
		candidates, err = c.TopLevelWindows()
		if err != nil {
			return 0, fmt.Errorf("failed to list windows: %w", err)
		}
	}
	if win, ok := findByTitle(candidates, c.WindowName, substring); ok {
		return uint32(win), nil
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}

func findByTitle(wins []xproto.Window, name func(xproto.Window) string, substring string) (xproto.Window, bool) {
	for _, win := range wins {
		if strings.Contains(name(win), substring) {
			return win, true
		}
	}
	return 0, false
}

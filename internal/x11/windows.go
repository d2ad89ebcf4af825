package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// WindowAttributes fetches the core attributes of a window. It fails with
// BadWindow once the window has been destroyed.
func (c *Connection) WindowAttributes(windowID xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get attributes of window %d: %w", windowID, err)
	}
	return attrs, nil
}

// WindowName prefers _NET_WM_NAME and falls back to WM_NAME. Returns ""
// when neither is set.
func (c *Connection) WindowName(windowID xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return name
	}
	return ""
}

// TransientFor returns the WM_TRANSIENT_FOR parent, if any.
func (c *Connection) TransientFor(windowID xproto.Window) (xproto.Window, bool) {
	parent, err := icccm.WmTransientForGet(c.XUtil, windowID)
	if err != nil || parent == 0 {
		return 0, false
	}
	return parent, true
}

// SizeHint returns the client's preferred size from WM_NORMAL_HINTS. The
// user- or program-specified size wins; the base size is the fallback.
func (c *Connection) SizeHint(windowID xproto.Window) (width, height int, ok bool) {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, false
	}

	if hints.Flags&(icccm.SizeHintUSSize|icccm.SizeHintPSize) > 0 && hints.Width > 0 && hints.Height > 0 {
		return int(hints.Width), int(hints.Height), true
	}
	if hints.Flags&icccm.SizeHintPBaseSize > 0 && hints.BaseWidth > 0 && hints.BaseHeight > 0 {
		return int(hints.BaseWidth), int(hints.BaseHeight), true
	}
	return 0, 0, false
}

// WindowTypes returns the _NET_WM_WINDOW_TYPE atom names in client order.
func (c *Connection) WindowTypes(windowID xproto.Window) []string {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	return types
}

// PointerLocation returns the pointer position relative to the root window.
func (c *Connection) PointerLocation() (x, y int, err error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// Keysym resolves a keycode with no modifiers applied.
func (c *Connection) Keysym(code xproto.Keycode) xproto.Keysym {
	return keybind.KeysymGet(c.XUtil, code, 0)
}

// AtomName resolves an atom id. xgbutil caches the result.
func (c *Connection) AtomName(atom xproto.Atom) (string, error) {
	return xprop.AtomName(c.XUtil, atom)
}

// IsUrgent reports whether WM_HINTS carries the urgency flag.
func (c *Connection) IsUrgent(windowID xproto.Window) bool {
	hints, err := icccm.WmHintsGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	return hints.Flags&icccm.HintUrgency > 0
}

// TopLevelWindows lists the children of the root window.
func (c *Connection) TopLevelWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}
	return tree.Children, nil
}

//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend
// interface and owns the interaction mode.
type LinuxBackend struct {
	conn  *x11.Connection
	mode  *ModeState
	grabs []ButtonGrab
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn, mode: NewModeState()}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Connection returns the underlying X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	return b.conn
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// NextEvent blocks for the next raw event; nil, nil means the connection closed.
func (b *LinuxBackend) NextEvent() (xgb.Event, error) {
	return b.conn.NextEvent()
}

// ModeState exposes the writable mode to the policy layer.
func (b *LinuxBackend) ModeState() *ModeState {
	return b.mode
}

// Mode returns a snapshot of the interaction mode.
func (b *LinuxBackend) Mode() Mode {
	return b.mode.Current()
}

// LockMods returns the lock modifier bits button grabs ignore.
func (b *LinuxBackend) LockMods() uint16 {
	return b.conn.LockMods()
}

// TopLevelWindows lists the handles of every child of the root window.
func (b *LinuxBackend) TopLevelWindows() ([]WindowHandle, error) {
	wins, err := b.conn.TopLevelWindows()
	if err != nil {
		return nil, err
	}
	out := make([]WindowHandle, 0, len(wins))
	for _, w := range wins {
		out = append(out, XlibHandle(uint32(w)))
	}
	return out, nil
}

// MapWindow maps a client window.
func (b *LinuxBackend) MapWindow(h WindowHandle) error {
	return b.conn.MapWindow(xwin(h))
}

// ForwardRequest grants redirected requests that need no policy. It reports
// whether raw was such a request.
func (b *LinuxBackend) ForwardRequest(raw xgb.Event) (bool, error) {
	switch ev := raw.(type) {
	case xproto.ConfigureRequestEvent:
		return true, b.conn.ForwardConfigureRequest(ev)
	default:
		return false, nil
	}
}

// SetButtonGrabs configures the grabs installed on newly subscribed windows.
func (b *LinuxBackend) SetButtonGrabs(grabs ...ButtonGrab) {
	b.grabs = append([]ButtonGrab(nil), grabs...)
}

// ParseButtonGrab parses a binding such as "Mod4-1".
func (b *LinuxBackend) ParseButtonGrab(binding string) (ButtonGrab, error) {
	mods, button, err := b.conn.ParseButton(binding)
	if err != nil {
		return ButtonGrab{}, fmt.Errorf("invalid button binding %q: %w", binding, err)
	}
	return ButtonGrab{Modifiers: mods, Button: uint8(button)}, nil
}

// SubscribeToWindowEvents selects client events on a window and installs the
// drag button grabs. Failures mean the window is already gone, which the
// following attribute query reports.
func (b *LinuxBackend) SubscribeToWindowEvents(h WindowHandle) {
	win := xwin(h)
	if err := b.conn.Subscribe(win); err != nil {
		return
	}
	for _, g := range b.grabs {
		_ = b.conn.GrabButton(win, g.Modifiers, xproto.Button(g.Button))
	}
}

// WindowAttrs fails once the window no longer exists.
func (b *LinuxBackend) WindowAttrs(h WindowHandle) (WindowAttrs, error) {
	attrs, err := b.conn.WindowAttributes(xwin(h))
	if err != nil {
		return WindowAttrs{}, err
	}
	return WindowAttrs{
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.MapState == xproto.MapStateViewable,
	}, nil
}

// WindowName returns the window title, or "" when unset.
func (b *LinuxBackend) WindowName(h WindowHandle) string {
	return b.conn.WindowName(xwin(h))
}

// TransientFor returns the window's transient parent.
func (b *LinuxBackend) TransientFor(h WindowHandle) (WindowHandle, bool) {
	parent, ok := b.conn.TransientFor(xwin(h))
	if !ok {
		return WindowHandle{}, false
	}
	return XlibHandle(uint32(parent)), true
}

// HintSizing returns the preferred floating size.
func (b *LinuxBackend) HintSizing(h WindowHandle) (Size, bool) {
	w, hgt, ok := b.conn.SizeHint(xwin(h))
	if !ok {
		return Size{}, false
	}
	return Size{Width: w, Height: hgt}, true
}

// WindowType classifies the window, defaulting to normal.
func (b *LinuxBackend) WindowType(h WindowHandle) WindowType {
	return WindowTypeFromAtoms(b.conn.WindowTypes(xwin(h)))
}

// PointerLocation returns the pointer's root coordinates.
func (b *LinuxBackend) PointerLocation() (Point, bool) {
	x, y, err := b.conn.PointerLocation()
	if err != nil {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// KeycodeToKeysym resolves a physical keycode.
func (b *LinuxBackend) KeycodeToKeysym(code uint8) uint32 {
	return uint32(b.conn.Keysym(xproto.Keycode(code)))
}

// AtomName resolves an atom id to its name.
func (b *LinuxBackend) AtomName(atom uint32) (string, bool) {
	name, err := b.conn.AtomName(xproto.Atom(atom))
	if err != nil {
		return "", false
	}
	return name, true
}

// Strut returns the reserved screen edges of a dock window.
func (b *LinuxBackend) Strut(h WindowHandle) (Strut, bool) {
	s, ok := b.conn.Struts(xwin(h))
	if !ok {
		return Strut{}, false
	}
	return Strut{
		Left:   int(s.Left),
		Right:  int(s.Right),
		Top:    int(s.Top),
		Bottom: int(s.Bottom),
	}, true
}

// Urgent reports the WM_HINTS urgency flag.
func (b *LinuxBackend) Urgent(h WindowHandle) bool {
	return b.conn.IsUrgent(xwin(h))
}

func xwin(h WindowHandle) xproto.Window {
	return xproto.Window(h.XID())
}

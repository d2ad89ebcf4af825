package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ErrAnotherWM is returned by BecomeManager when substructure redirection on
// the root window is already held by another client.
var ErrAnotherWM = errors.New("another window manager is already running")

// rootEventMask is what a window manager selects on the root window.
var rootEventMask = []int{
	xproto.EventMaskSubstructureRedirect,
	xproto.EventMaskSubstructureNotify,
	xproto.EventMaskPropertyChange,
	xproto.EventMaskFocusChange,
	xproto.EventMaskEnterWindow,
	xproto.EventMaskButtonPress,
	xproto.EventMaskButtonRelease,
	xproto.EventMaskPointerMotion,
}

// clientEventMask is selected on every managed client window.
var clientEventMask = []int{
	xproto.EventMaskEnterWindow,
	xproto.EventMaskFocusChange,
	xproto.EventMaskPropertyChange,
	xproto.EventMaskStructureNotify,
}

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	lockMods  uint16
	closeOnce sync.Once
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	// keybind backs keycode -> keysym resolution, mousebind backs button grabs
	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		lockMods: configureLockMods(xu),
	}, nil
}

// LockMods returns the CapsLock, NumLock and ScrollLock modifier bits. Button
// grabs ignore them.
func (c *Connection) LockMods() uint16 {
	return c.lockMods
}

// BecomeManager selects substructure redirection on the root window. Only
// one client may hold it, so failure means another WM is running.
func (c *Connection) BecomeManager() error {
	if err := xwindow.New(c.XUtil, c.Root).Listen(rootEventMask...); err != nil {
		return fmt.Errorf("%w: %v", ErrAnotherWM, err)
	}
	return nil
}

// NextEvent blocks until the server delivers an event or an error. Both
// return values are nil once the connection has been closed.
func (c *Connection) NextEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// Subscribe selects client events on a window.
func (c *Connection) Subscribe(win xproto.Window) error {
	return xwindow.New(c.XUtil, win).Listen(clientEventMask...)
}

// GrabButton grabs a modifier+button combination on a client window so the
// press is reported to the window manager instead of the client.
func (c *Connection) GrabButton(win xproto.Window, mods uint16, button xproto.Button) error {
	return mousebind.GrabChecked(c.XUtil, win, mods, button, false)
}

// ParseButton parses bindings such as "Mod4-1".
func (c *Connection) ParseButton(binding string) (uint16, xproto.Button, error) {
	return mousebind.ParseString(c.XUtil, binding)
}

// Close cleanly disconnects from the X11 server. It is safe to call more
// than once; NextEvent drains and then reports the closed connection.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.XUtil.Conn().Close()
	})
}

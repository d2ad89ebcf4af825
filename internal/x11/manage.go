package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// MapWindow maps a client that asked to be mapped. Substructure redirection
// on root means the server waits for the window manager to do it.
func (c *Connection) MapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), win).Check()
}

// ForwardConfigureRequest applies a redirected ConfigureRequest exactly as the
// client asked.
func (c *Connection) ForwardConfigureRequest(ev xproto.ConfigureRequestEvent) error {
	mask, values := configureValues(ev)
	if mask == 0 {
		return nil
	}
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), ev.Window, mask, values).Check()
}

// configureValues rebuilds the value list of a ConfigureRequest. Values are
// listed in mask bit order, signed ones sign-extended to 32 bits.
func configureValues(ev xproto.ConfigureRequestEvent) (uint16, []uint32) {
	fields := []struct {
		bit   uint16
		value uint32
	}{
		{xproto.ConfigWindowX, uint32(int32(ev.X))},
		{xproto.ConfigWindowY, uint32(int32(ev.Y))},
		{xproto.ConfigWindowWidth, uint32(ev.Width)},
		{xproto.ConfigWindowHeight, uint32(ev.Height)},
		{xproto.ConfigWindowBorderWidth, uint32(ev.BorderWidth)},
		{xproto.ConfigWindowSibling, uint32(ev.Sibling)},
		{xproto.ConfigWindowStackMode, uint32(ev.StackMode)},
	}

	var mask uint16
	var values []uint32
	for _, f := range fields {
		if ev.ValueMask&f.bit != 0 {
			mask |= f.bit
			values = append(values, f.value)
		}
	}
	return mask, values
}

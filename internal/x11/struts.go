package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Struts reads the space a dock reserves on each screen edge. Some docks
// only set _NET_WM_STRUT (no partial ranges), so that is the fallback.
//
// The properties are read through xprop rather than ewmh.WmStrutGet and
// ewmh.WmStrutPartialGet because those index the reply without checking its
// length and panic on a short property.
func (c *Connection) Struts(windowID xproto.Window) (*ewmh.WmStrut, bool) {
	for _, prop := range []string{"_NET_WM_STRUT_PARTIAL", "_NET_WM_STRUT"} {
		vals, err := xprop.PropValNums(xprop.GetProperty(c.XUtil, windowID, prop))
		if err != nil || len(vals) < 4 {
			continue
		}
		return &ewmh.WmStrut{
			Left:   vals[0],
			Right:  vals[1],
			Top:    vals[2],
			Bottom: vals[3],
		}, true
	}
	return nil, false
}

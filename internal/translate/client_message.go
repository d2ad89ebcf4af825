package translate

import (
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
)

// _NET_WM_MOVERESIZE directions.
const (
	moveResizeSizeLeft     = 7
	moveResizeMove         = 8
	moveResizeSizeKeyboard = 9
	moveResizeMoveKeyboard = 10
	moveResizeCancel       = 11
)

const (
	iconicState    = 3
	allDesktopsTag = 0xFFFFFFFF
)

// ClientMessage translates an inter-client protocol request. Unknown
// message types and short or malformed payloads yield nil.
func (t *Translator) ClientMessage(ev xproto.ClientMessageEvent) platform.Event {
	if ev.Format != 32 {
		return nil
	}
	name, ok := t.backend.AtomName(uint32(ev.Type))
	if !ok {
		return nil
	}

	data := words(ev.Data.Data32)
	h := handle(ev.Window)

	switch name {
	case "_NET_ACTIVE_WINDOW":
		return platform.WindowTakeFocus{Window: h}

	case "_NET_CLOSE_WINDOW":
		return platform.CloseWindowRequest{Window: h}

	case "WM_CHANGE_STATE":
		if state, ok := data.at(0); ok && state == iconicState {
			return platform.MinimizeRequest{Window: h}
		}
		return nil

	case "_NET_WM_STATE":
		return t.wmState(h, data)

	case "_NET_WM_DESKTOP":
		desktop, ok := data.at(0)
		if !ok {
			return nil
		}
		tag := int(desktop)
		if desktop == allDesktopsTag {
			tag = platform.AllTags
		}
		return platform.SendWindowToTag{Window: h, Tag: tag}

	case "_NET_CURRENT_DESKTOP":
		desktop, ok := data.at(0)
		if !ok || desktop == allDesktopsTag {
			return nil
		}
		return platform.GoToTag{Tag: int(desktop)}

	case "_NET_MOVERESIZE_WINDOW":
		return moveResizeWindow(h, data)

	case "_NET_WM_MOVERESIZE":
		return wmMoveResize(h, data)

	default:
		return nil
	}
}

func (t *Translator) wmState(h platform.WindowHandle, data words) platform.Event {
	action, ok := data.at(0)
	if !ok || action > uint32(platform.StateToggle) {
		return nil
	}

	var states []platform.WindowState
	for _, i := range []int{1, 2} {
		atom, ok := data.at(i)
		if !ok || atom == 0 {
			continue
		}
		name, ok := t.backend.AtomName(atom)
		if !ok {
			continue
		}
		if s, ok := platform.WindowStateFromAtom(name); ok {
			states = append(states, s)
		}
	}
	if len(states) == 0 {
		return nil
	}

	return platform.SetState{
		Window: h,
		Action: platform.StateAction(action),
		States: states,
	}
}

func moveResizeWindow(h platform.WindowHandle, data words) platform.Event {
	flags, ok := data.at(0)
	if !ok {
		return nil
	}

	req := platform.MoveResizeRequest{
		Window:  h,
		Gravity: int(flags & 0xff),
	}
	fields := []**int{&req.X, &req.Y, &req.Width, &req.Height}
	for i, field := range fields {
		if flags&(1<<(8+i)) == 0 {
			continue
		}
		v, ok := data.at(i + 1)
		if !ok {
			return nil
		}
		n := int(int32(v))
		*field = &n
	}
	if req.X == nil && req.Y == nil && req.Width == nil && req.Height == nil {
		return nil
	}
	return req
}

func wmMoveResize(h platform.WindowHandle, data words) platform.Event {
	direction, ok := data.at(2)
	if !ok {
		return nil
	}
	if direction == moveResizeCancel {
		return platform.ChangeToNormalMode{}
	}

	x, okX := data.at(0)
	y, okY := data.at(1)
	if !okX || !okY {
		return nil
	}
	origin := platform.Point{X: int(int32(x)), Y: int(int32(y))}

	switch {
	case direction == moveResizeMove || direction == moveResizeMoveKeyboard:
		return platform.DragRequest{Window: h, Kind: platform.DragMove, Origin: origin}
	case direction <= moveResizeSizeLeft || direction == moveResizeSizeKeyboard:
		return platform.DragRequest{Window: h, Kind: platform.DragResize, Origin: origin}
	default:
		return nil
	}
}

// words guards indexing into a client message payload.
type words []uint32

func (w words) at(i int) (uint32, bool) {
	if i < 0 || i >= len(w) {
		return 0, false
	}
	return w[i], true
}

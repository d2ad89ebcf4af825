// Package translate turns raw X11 events into platform events.
//
// A Translator is a pure function of the raw event and the backend's current
// answers: it keeps no state between calls and never writes the interaction
// mode. Every failure degrades to "no event" (a nil platform.Event).
package translate

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LogFunc records one diagnostic line. It must not influence translation.
type LogFunc func(msg string)

// Translator maps raw protocol events to at most one platform event each.
type Translator struct {
	backend platform.Backend
	log     LogFunc
}

// New creates a translator. A nil log discards diagnostics.
func New(backend platform.Backend, log LogFunc) *Translator {
	if log == nil {
		log = func(string) {}
	}
	return &Translator{backend: backend, log: log}
}

// Translate converts one raw event. It returns nil when the event has no
// meaning for the window manager.
func (t *Translator) Translate(raw xgb.Event) platform.Event {
	switch ev := raw.(type) {
	case xproto.MapRequestEvent:
		t.logf("MapRequest %s", ev)
		return t.mapRequest(ev)

	case xproto.UnmapNotifyEvent:
		t.logf("UnmapNotify %s", ev)
		return nil

	case xproto.CreateNotifyEvent:
		t.logf("CreateNotify %s", ev)
		return nil

	case xproto.DestroyNotifyEvent:
		t.logf("DestroyNotify %s", ev)
		return platform.WindowDestroy{Window: handle(ev.Window)}

	case xproto.ClientMessageEvent:
		t.logf("ClientMessage %s", ev)
		return t.ClientMessage(ev)

	case xproto.ButtonPressEvent:
		t.logf("ButtonPress %s", ev)
		return platform.MouseCombo{
			Modifiers: ev.State,
			Button:    uint8(ev.Detail),
			Window:    handle(ev.Event),
		}

	case xproto.ButtonReleaseEvent:
		t.logf("ButtonRelease %s", ev)
		return platform.ChangeToNormalMode{}

	case xproto.EnterNotifyEvent:
		t.logf("EnterNotify %s", ev)
		return t.focused(handle(ev.Event))

	case xproto.LeaveNotifyEvent:
		t.logf("LeaveNotify %s", ev)
		return nil

	case xproto.PropertyNotifyEvent:
		t.logf("PropertyNotify %s", ev)
		return t.PropertyNotify(ev)

	case xproto.MapNotifyEvent:
		t.logf("MapNotify %s", ev)
		return nil

	case xproto.KeyPressEvent:
		t.logf("KeyPress %s", ev)
		sym := t.backend.KeycodeToKeysym(uint8(ev.Detail))
		return platform.KeyCombo{Modifiers: ev.State, Keysym: sym}

	case xproto.KeyReleaseEvent:
		t.logf("KeyRelease %s", ev)
		return nil

	case xproto.MotionNotifyEvent:
		t.logf("MotionNotify %s", ev)
		return t.motion(ev)

	case xproto.FocusInEvent:
		t.logf("FocusIn %s", ev)
		return t.focused(handle(ev.Event))

	case xproto.FocusOutEvent:
		t.logf("FocusOut %s", ev)
		return nil

	case xproto.KeymapNotifyEvent:
		t.log("KeymapNotify")
		return nil
	case xproto.ExposeEvent:
		t.log("Expose")
		return nil
	case xproto.GraphicsExposureEvent:
		t.log("GraphicsExpose")
		return nil
	case xproto.NoExposureEvent:
		t.log("NoExpose")
		return nil
	case xproto.VisibilityNotifyEvent:
		t.log("VisibilityNotify")
		return nil
	case xproto.ReparentNotifyEvent:
		t.log("ReparentNotify")
		return nil
	case xproto.ConfigureNotifyEvent:
		t.logf("ConfigureNotify %s", ev)
		return nil
	case xproto.ConfigureRequestEvent:
		t.log("ConfigureRequest")
		return nil
	case xproto.GravityNotifyEvent:
		t.log("GravityNotify")
		return nil
	case xproto.ResizeRequestEvent:
		t.log("ResizeRequest")
		return nil
	case xproto.CirculateNotifyEvent:
		t.log("CirculateNotify")
		return nil
	case xproto.CirculateRequestEvent:
		t.log("CirculateRequest")
		return nil
	case xproto.SelectionClearEvent:
		t.log("SelectionClear")
		return nil
	case xproto.SelectionRequestEvent:
		t.log("SelectionRequest")
		return nil
	case xproto.SelectionNotifyEvent:
		t.log("SelectionNotify")
		return nil
	case xproto.ColormapNotifyEvent:
		t.log("ColormapNotify")
		return nil
	case xproto.MappingNotifyEvent:
		t.log("MappingNotify")
		return nil
	case xproto.GeGenericEvent:
		t.log("GenericEvent")
		return nil

	default:
		t.logf("OTHER: (unknown event) : %v", raw)
		return nil
	}
}

// mapRequest builds the window record for a client asking to be mapped.
func (t *Translator) mapRequest(ev xproto.MapRequestEvent) platform.Event {
	h := handle(ev.Window)
	// Subscribe first so nothing sent between now and the queries is lost.
	t.backend.SubscribeToWindowEvents(h)

	attrs, err := t.backend.WindowAttrs(h)
	if err != nil {
		return nil
	}
	if attrs.OverrideRedirect {
		return nil
	}
	return platform.WindowCreate{Window: t.window(h)}
}

// Adopt builds the record of a window that was already mapped before the
// window manager started. Override-redirect, unmapped and vanished windows
// are not adopted.
func (t *Translator) Adopt(h platform.WindowHandle) (platform.Window, bool) {
	t.backend.SubscribeToWindowEvents(h)

	attrs, err := t.backend.WindowAttrs(h)
	if err != nil || attrs.OverrideRedirect || !attrs.Viewable {
		t.logf("Adopt %s: skipped", h)
		return platform.Window{}, false
	}
	t.logf("Adopt %s", h)
	return t.window(h), true
}

func (t *Translator) window(h platform.WindowHandle) platform.Window {
	w := platform.NewWindow(h, t.backend.WindowName(h))
	if parent, ok := t.backend.TransientFor(h); ok {
		w.Transient = &parent
	}
	if size, ok := t.backend.HintSizing(h); ok {
		w.FloatingSize = &size
	}
	w.Type = t.backend.WindowType(h)
	return w
}

func (t *Translator) focused(h platform.WindowHandle) platform.Event {
	loc, ok := t.backend.PointerLocation()
	if !ok {
		return nil
	}
	return platform.FocusedWindow{Window: h, X: loc.X, Y: loc.Y}
}

func (t *Translator) motion(ev xproto.MotionNotifyEvent) platform.Event {
	x, y := int(ev.RootX), int(ev.RootY)
	mode := t.backend.Mode()
	switch mode.Kind {
	case platform.ModeMoving:
		dx, dy := mode.Offset(x, y)
		return platform.MoveWindow{Window: mode.Window, DX: dx, DY: dy}
	case platform.ModeResizing:
		dx, dy := mode.Offset(x, y)
		return platform.ResizeWindow{Window: mode.Window, DX: dx, DY: dy}
	default:
		return platform.Movement{Window: handle(ev.Event), X: x, Y: y}
	}
}

func (t *Translator) logf(format string, args ...any) {
	t.log(fmt.Sprintf(format, args...))
}

func handle(w xproto.Window) platform.WindowHandle {
	return platform.XlibHandle(uint32(w))
}

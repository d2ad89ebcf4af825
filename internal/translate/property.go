package translate

import (
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
)

// PropertyNotify translates a property change on a client window into a
// metadata update. The notification carries no value, so the new one is
// re-queried from the backend. Deletions and unknown properties yield nil.
func (t *Translator) PropertyNotify(ev xproto.PropertyNotifyEvent) platform.Event {
	if ev.State == xproto.PropertyDelete {
		return nil
	}
	name, ok := t.backend.AtomName(uint32(ev.Atom))
	if !ok {
		return nil
	}

	h := handle(ev.Window)
	change := platform.WindowChange{Window: h}

	switch name {
	case "WM_NAME", "_NET_WM_NAME":
		n := t.backend.WindowName(h)
		change.Name = &n

	case "WM_TRANSIENT_FOR":
		parent, ok := t.backend.TransientFor(h)
		if !ok {
			return nil
		}
		change.Transient = &parent

	case "WM_NORMAL_HINTS":
		size, ok := t.backend.HintSizing(h)
		if !ok {
			return nil
		}
		change.FloatingSize = &size

	case "_NET_WM_WINDOW_TYPE":
		wt := t.backend.WindowType(h)
		change.Type = &wt

	case "_NET_WM_STRUT", "_NET_WM_STRUT_PARTIAL":
		strut, ok := t.backend.Strut(h)
		if !ok {
			return nil
		}
		change.Strut = &strut

	case "WM_HINTS":
		urgent := t.backend.Urgent(h)
		change.Urgent = &urgent

	default:
		return nil
	}

	return platform.WindowUpdate{Change: change}
}

package daemon

import (
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
)

// defaultLockMods are CapsLock and the usual NumLock bit.
const defaultLockMods = xproto.ModMaskLock | xproto.ModMask2

// keyboardMods keeps Shift, Lock, Control and Mod1-Mod5, dropping the
// pointer button bits.
const keyboardMods = 0xff

// PointerLocator reports the current pointer position.
type PointerLocator interface {
	PointerLocation() (platform.Point, bool)
}

// ManagedWindows reports whether a window is a managed client. The root
// window and unmanaged windows never are.
type ManagedWindows interface {
	IsManaged(h platform.WindowHandle) bool
}

// DragBindings are the button combinations that start drags.
type DragBindings struct {
	Move   platform.ButtonGrab
	Resize platform.ButtonGrab
	// LockMods never distinguish bindings. Zero means CapsLock and Mod2.
	LockMods uint16
}

// DragPolicy starts drag interactions. It only switches the interaction
// mode; moving and resizing the window is left to the layout layer that
// consumes MoveWindow and ResizeWindow events.
type DragPolicy struct {
	bindings DragBindings
	modes    *platform.ModeState
	pointer  PointerLocator
	managed  ManagedWindows
	logger   *logging.Logger
}

// NewDragPolicy creates a drag policy writing to modes. Drags only start on
// windows managed reports; a nil managed accepts any window.
func NewDragPolicy(bindings DragBindings, modes *platform.ModeState, pointer PointerLocator, managed ManagedWindows, logger *logging.Logger) *DragPolicy {
	if logger == nil {
		logger = logging.Nop()
	}
	return &DragPolicy{
		bindings: bindings,
		modes:    modes,
		pointer:  pointer,
		managed:  managed,
		logger:   logger,
	}
}

// Handle starts a drag for matching mouse combos and client drag requests.
// Other events pass through.
func (p *DragPolicy) Handle(ev platform.Event) bool {
	switch e := ev.(type) {
	case platform.MouseCombo:
		if !p.draggable(e.Window) {
			return false
		}
		switch {
		case p.matches(p.bindings.Move, e):
			return p.begin(platform.DragMove, e.Window)
		case p.matches(p.bindings.Resize, e):
			return p.begin(platform.DragResize, e.Window)
		}
	case platform.DragRequest:
		if !p.draggable(e.Window) {
			return false
		}
		p.start(e.Kind, e.Window, e.Origin)
		return true
	}
	return false
}

func (p *DragPolicy) draggable(h platform.WindowHandle) bool {
	if h.IsZero() {
		return false
	}
	return p.managed == nil || p.managed.IsManaged(h)
}

func (p *DragPolicy) begin(kind platform.DragKind, h platform.WindowHandle) bool {
	origin, ok := p.pointer.PointerLocation()
	if !ok {
		p.logger.Warn("drag not started: pointer location unavailable", "window", h)
		return false
	}
	p.start(kind, h, origin)
	return true
}

func (p *DragPolicy) start(kind platform.DragKind, h platform.WindowHandle, origin platform.Point) {
	if kind == platform.DragResize {
		p.modes.BeginResize(h, origin)
	} else {
		p.modes.BeginMove(h, origin)
	}
	p.logger.Debug("drag started", "kind", kind, "window", h, "x", origin.X, "y", origin.Y)
}

func (p *DragPolicy) matches(b platform.ButtonGrab, e platform.MouseCombo) bool {
	if b.Button == 0 || b.Button != e.Button {
		return false
	}
	lock := p.bindings.LockMods
	if lock == 0 {
		lock = defaultLockMods
	}
	return cleanMods(b.Modifiers, lock) == cleanMods(e.Modifiers, lock)
}

func cleanMods(m, lock uint16) uint16 {
	return m & keyboardMods &^ lock
}

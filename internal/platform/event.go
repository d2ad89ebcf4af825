package platform

import (
	"fmt"
	"strings"
)

// Event is a translated display event. The set of implementations is closed;
// consumers switch on the concrete type.
type Event interface {
	fmt.Stringer
	isEvent()
}

// WindowCreate announces a new managed window.
type WindowCreate struct {
	Window Window
}

// WindowDestroy announces that a window is gone. It is emitted even for
// handles the policy layer never saw.
type WindowDestroy struct {
	Window WindowHandle
}

// MouseCombo is a pointer button press with the modifier state at the time.
type MouseCombo struct {
	Modifiers uint16
	Button    uint8
	Window    WindowHandle
}

// ChangeToNormalMode ends any drag interaction.
type ChangeToNormalMode struct{}

// FocusedWindow reports a window gaining pointer or input focus along with
// the pointer location.
type FocusedWindow struct {
	Window WindowHandle
	X, Y   int
}

// KeyCombo is a key press resolved to a keysym.
type KeyCombo struct {
	Modifiers uint16
	Keysym    uint32
}

// Movement is plain pointer motion in absolute root coordinates.
type Movement struct {
	Window WindowHandle
	X, Y   int
}

// MoveWindow is pointer motion while dragging a window, relative to the
// drag origin.
type MoveWindow struct {
	Window WindowHandle
	DX, DY int
}

// ResizeWindow is pointer motion while resizing a window, relative to the
// drag origin.
type ResizeWindow struct {
	Window WindowHandle
	DX, DY int
}

// WindowUpdate carries a single re-queried piece of window metadata.
type WindowUpdate struct {
	Change WindowChange
}

// WindowChange holds one changed field; the others are nil.
type WindowChange struct {
	Window       WindowHandle
	Name         *string
	Transient    *WindowHandle
	FloatingSize *Size
	Type         *WindowType
	Strut        *Strut
	Urgent       *bool
}

// WindowTakeFocus is a client request to activate a window.
type WindowTakeFocus struct {
	Window WindowHandle
}

// CloseWindowRequest is a client request to close a window.
type CloseWindowRequest struct {
	Window WindowHandle
}

// MinimizeRequest is a client request to iconify a window.
type MinimizeRequest struct {
	Window WindowHandle
}

// SetState is a _NET_WM_STATE change request.
type SetState struct {
	Window WindowHandle
	Action StateAction
	States []WindowState
}

// SendWindowToTag asks for a window to move to another tag. Tag is AllTags
// for sticky windows.
type SendWindowToTag struct {
	Window WindowHandle
	Tag    int
}

// GoToTag asks for the visible tag to change.
type GoToTag struct {
	Tag int
}

// MoveResizeRequest is a _NET_MOVERESIZE_WINDOW request. Absent geometry
// fields are nil.
type MoveResizeRequest struct {
	Window  WindowHandle
	Gravity int
	X       *int
	Y       *int
	Width   *int
	Height  *int
}

// DragRequest is a client asking the window manager to start a pointer drag
// (_NET_WM_MOVERESIZE).
type DragRequest struct {
	Window WindowHandle
	Kind   DragKind
	Origin Point
}

// AllTags marks a window that should appear on every tag.
const AllTags = -1

// DragKind distinguishes move and resize drags.
type DragKind int

const (
	DragMove DragKind = iota
	DragResize
)

func (k DragKind) String() string {
	if k == DragResize {
		return "resize"
	}
	return "move"
}

// StateAction is the _NET_WM_STATE action word.
type StateAction int

const (
	StateRemove StateAction = iota
	StateAdd
	StateToggle
)

func (a StateAction) String() string {
	switch a {
	case StateRemove:
		return "remove"
	case StateAdd:
		return "add"
	case StateToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// WindowState is one _NET_WM_STATE flag.
type WindowState int

const (
	StateModal WindowState = iota
	StateSticky
	StateMaximizedVert
	StateMaximizedHorz
	StateShaded
	StateSkipTaskbar
	StateSkipPager
	StateHidden
	StateFullscreen
	StateAbove
	StateBelow
	StateDemandsAttention
)

var windowStateAtoms = map[string]WindowState{
	"_NET_WM_STATE_MODAL":             StateModal,
	"_NET_WM_STATE_STICKY":            StateSticky,
	"_NET_WM_STATE_MAXIMIZED_VERT":    StateMaximizedVert,
	"_NET_WM_STATE_MAXIMIZED_HORZ":    StateMaximizedHorz,
	"_NET_WM_STATE_SHADED":            StateShaded,
	"_NET_WM_STATE_SKIP_TASKBAR":      StateSkipTaskbar,
	"_NET_WM_STATE_SKIP_PAGER":        StateSkipPager,
	"_NET_WM_STATE_HIDDEN":            StateHidden,
	"_NET_WM_STATE_FULLSCREEN":        StateFullscreen,
	"_NET_WM_STATE_ABOVE":             StateAbove,
	"_NET_WM_STATE_BELOW":             StateBelow,
	"_NET_WM_STATE_DEMANDS_ATTENTION": StateDemandsAttention,
}

// WindowStateFromAtom maps a _NET_WM_STATE_* atom name to a WindowState.
func WindowStateFromAtom(name string) (WindowState, bool) {
	s, ok := windowStateAtoms[name]
	return s, ok
}

func (s WindowState) String() string {
	for name, st := range windowStateAtoms {
		if st == s {
			return strings.ToLower(strings.TrimPrefix(name, "_NET_WM_STATE_"))
		}
	}
	return "unknown"
}

func (WindowCreate) isEvent()       {}
func (WindowDestroy) isEvent()      {}
func (MouseCombo) isEvent()         {}
func (ChangeToNormalMode) isEvent() {}
func (FocusedWindow) isEvent()      {}
func (KeyCombo) isEvent()           {}
func (Movement) isEvent()           {}
func (MoveWindow) isEvent()         {}
func (ResizeWindow) isEvent()       {}
func (WindowUpdate) isEvent()       {}
func (WindowTakeFocus) isEvent()    {}
func (CloseWindowRequest) isEvent() {}
func (MinimizeRequest) isEvent()    {}
func (SetState) isEvent()           {}
func (SendWindowToTag) isEvent()    {}
func (GoToTag) isEvent()            {}
func (MoveResizeRequest) isEvent()  {}
func (DragRequest) isEvent()        {}

func (e WindowCreate) String() string {
	w := e.Window
	s := fmt.Sprintf("WindowCreate(%s name=%q type=%s", w.Handle, w.Name, w.Type)
	if w.Transient != nil {
		s += fmt.Sprintf(" transient=%s", *w.Transient)
	}
	if w.FloatingSize != nil {
		s += fmt.Sprintf(" size=%dx%d", w.FloatingSize.Width, w.FloatingSize.Height)
	}
	return s + ")"
}

func (e WindowDestroy) String() string {
	return fmt.Sprintf("WindowDestroy(%s)", e.Window)
}

func (e MouseCombo) String() string {
	return fmt.Sprintf("MouseCombo(mods=0x%x button=%d %s)", e.Modifiers, e.Button, e.Window)
}

func (ChangeToNormalMode) String() string {
	return "ChangeToNormalMode"
}

func (e FocusedWindow) String() string {
	return fmt.Sprintf("FocusedWindow(%s %d,%d)", e.Window, e.X, e.Y)
}

func (e KeyCombo) String() string {
	return fmt.Sprintf("KeyCombo(mods=0x%x keysym=0x%x)", e.Modifiers, e.Keysym)
}

func (e Movement) String() string {
	return fmt.Sprintf("Movement(%s %d,%d)", e.Window, e.X, e.Y)
}

func (e MoveWindow) String() string {
	return fmt.Sprintf("MoveWindow(%s %+d,%+d)", e.Window, e.DX, e.DY)
}

func (e ResizeWindow) String() string {
	return fmt.Sprintf("ResizeWindow(%s %+d,%+d)", e.Window, e.DX, e.DY)
}

func (e WindowUpdate) String() string {
	c := e.Change
	var field string
	switch {
	case c.Name != nil:
		field = fmt.Sprintf("name=%q", *c.Name)
	case c.Transient != nil:
		field = fmt.Sprintf("transient=%s", *c.Transient)
	case c.FloatingSize != nil:
		field = fmt.Sprintf("size=%dx%d", c.FloatingSize.Width, c.FloatingSize.Height)
	case c.Type != nil:
		field = fmt.Sprintf("type=%s", *c.Type)
	case c.Strut != nil:
		field = fmt.Sprintf("strut=%d,%d,%d,%d", c.Strut.Left, c.Strut.Right, c.Strut.Top, c.Strut.Bottom)
	case c.Urgent != nil:
		field = fmt.Sprintf("urgent=%t", *c.Urgent)
	}
	return fmt.Sprintf("WindowUpdate(%s %s)", c.Window, field)
}

func (e WindowTakeFocus) String() string {
	return fmt.Sprintf("WindowTakeFocus(%s)", e.Window)
}

func (e CloseWindowRequest) String() string {
	return fmt.Sprintf("CloseWindowRequest(%s)", e.Window)
}

func (e MinimizeRequest) String() string {
	return fmt.Sprintf("MinimizeRequest(%s)", e.Window)
}

func (e SetState) String() string {
	names := make([]string, 0, len(e.States))
	for _, s := range e.States {
		names = append(names, s.String())
	}
	return fmt.Sprintf("SetState(%s %s %s)", e.Window, e.Action, strings.Join(names, ","))
}

func (e SendWindowToTag) String() string {
	return fmt.Sprintf("SendWindowToTag(%s tag=%d)", e.Window, e.Tag)
}

func (e GoToTag) String() string {
	return fmt.Sprintf("GoToTag(%d)", e.Tag)
}

func (e MoveResizeRequest) String() string {
	opt := func(v *int) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprint(*v)
	}
	return fmt.Sprintf("MoveResizeRequest(%s gravity=%d x=%s y=%s w=%s h=%s)",
		e.Window, e.Gravity, opt(e.X), opt(e.Y), opt(e.Width), opt(e.Height))
}

func (e DragRequest) String() string {
	return fmt.Sprintf("DragRequest(%s %s at %d,%d)", e.Window, e.Kind, e.Origin.X, e.Origin.Y)
}

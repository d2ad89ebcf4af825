package platform

import "fmt"

// WindowHandle is an opaque window identity. It is only ever a lookup key;
// ownership of window records stays with the window manager.
type WindowHandle struct {
	xid uint32
}

// XlibHandle wraps an X11 window id.
func XlibHandle(xid uint32) WindowHandle {
	return WindowHandle{xid: xid}
}

// XID returns the underlying X11 window id.
func (h WindowHandle) XID() uint32 {
	return h.xid
}

// IsZero reports whether the handle refers to no window.
func (h WindowHandle) IsZero() bool {
	return h.xid == 0
}

func (h WindowHandle) String() string {
	return fmt.Sprintf("0x%x", h.xid)
}

// Point is an absolute screen coordinate.
type Point struct {
	X int
	Y int
}

// Size is a width x height pair.
type Size struct {
	Width  int
	Height int
}

// Strut is the screen space a dock or panel reserves on each edge.
type Strut struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// WindowAttrs holds the subset of window attributes the translator inspects.
type WindowAttrs struct {
	OverrideRedirect bool
	// Viewable is set when the window and all its ancestors are mapped.
	Viewable bool
}

// Window is the record announced by a WindowCreate event.
type Window struct {
	Handle       WindowHandle
	Name         string
	Transient    *WindowHandle // parent window, set at creation only
	FloatingSize *Size
	Type         WindowType
}

// NewWindow returns a normal window with no transient parent or size hint.
func NewWindow(h WindowHandle, name string) Window {
	return Window{
		Handle: h,
		Name:   name,
		Type:   WindowTypeNormal,
	}
}

// ButtonGrab is a modifier+button combination grabbed on every client.
type ButtonGrab struct {
	Modifiers uint16
	Button    uint8
}

// Backend is the connection adapter's query surface. All methods are
// synchronous round trips on the display connection and must only be called
// from the goroutine that owns it.
type Backend interface {
	// SubscribeToWindowEvents selects future events on a window. It must run
	// before the first attribute query on a newly seen window.
	SubscribeToWindowEvents(h WindowHandle)
	// WindowAttrs fails when the window no longer exists.
	WindowAttrs(h WindowHandle) (WindowAttrs, error)
	// WindowName never fails; it returns "" when no name is set.
	WindowName(h WindowHandle) string
	TransientFor(h WindowHandle) (WindowHandle, bool)
	HintSizing(h WindowHandle) (Size, bool)
	WindowType(h WindowHandle) WindowType
	// PointerLocation returns absolute root coordinates.
	PointerLocation() (Point, bool)
	KeycodeToKeysym(code uint8) uint32
	AtomName(atom uint32) (string, bool)
	Strut(h WindowHandle) (Strut, bool)
	Urgent(h WindowHandle) bool
	// Mode is read-only from the translator's side.
	Mode() Mode
}

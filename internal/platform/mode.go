package platform

import (
	"fmt"
	"sync"
)

// ModeKind is the current drag-interaction state.
type ModeKind int

const (
	// ModeNormal means no drag is in progress
	ModeNormal ModeKind = iota
	// ModeMoving means a window follows the pointer
	ModeMoving
	// ModeResizing means a window's size follows the pointer
	ModeResizing
)

// String returns the string representation of the mode kind
func (k ModeKind) String() string {
	switch k {
	case ModeNormal:
		return "normal"
	case ModeMoving:
		return "moving"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Mode is a snapshot of the interaction mode together with the origin point
// recorded when the drag began. Window and Origin are zero in ModeNormal.
type Mode struct {
	Kind   ModeKind
	Window WindowHandle
	Origin Point
}

// NormalMode returns the idle mode.
func NormalMode() Mode {
	return Mode{Kind: ModeNormal}
}

// MovingMode returns a drag-to-move mode anchored at origin.
func MovingMode(h WindowHandle, origin Point) Mode {
	return Mode{Kind: ModeMoving, Window: h, Origin: origin}
}

// ResizingMode returns a drag-to-resize mode anchored at origin.
func ResizingMode(h WindowHandle, origin Point) Mode {
	return Mode{Kind: ModeResizing, Window: h, Origin: origin}
}

// Offset converts absolute root coordinates into an offset from the origin.
func (m Mode) Offset(x, y int) (dx, dy int) {
	return x - m.Origin.X, y - m.Origin.Y
}

func (m Mode) String() string {
	if m.Kind == ModeNormal {
		return m.Kind.String()
	}
	return fmt.Sprintf("%s(%s) origin=%d,%d", m.Kind, m.Window, m.Origin.X, m.Origin.Y)
}

// ModeState owns the current interaction mode. The policy layer writes it
// between translations; the translator only reads snapshots.
type ModeState struct {
	mu      sync.Mutex
	current Mode
}

// NewModeState creates a state in ModeNormal.
func NewModeState() *ModeState {
	return &ModeState{current: NormalMode()}
}

// Current returns a snapshot of the active mode.
func (s *ModeState) Current() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// BeginMove switches to ModeMoving for h, anchored at origin.
func (s *ModeState) BeginMove(h WindowHandle, origin Point) {
	s.set(MovingMode(h, origin))
}

// BeginResize switches to ModeResizing for h, anchored at origin.
func (s *ModeState) BeginResize(h WindowHandle, origin Point) {
	s.set(ResizingMode(h, origin))
}

// Reset returns to ModeNormal and clears the origin.
func (s *ModeState) Reset() {
	s.set(NormalMode())
}

// IsActive reports whether a drag is in progress.
func (s *ModeState) IsActive() bool {
	return s.Current().Kind != ModeNormal
}

func (s *ModeState) set(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = m
}

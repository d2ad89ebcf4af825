package daemon

import (
	"sort"
	"sync"

	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
)

// TrackedWindow is the latest known state of a managed window.
type TrackedWindow struct {
	Handle       platform.WindowHandle
	Name         string
	Type         platform.WindowType
	Transient    *platform.WindowHandle
	FloatingSize *platform.Size
	Strut        *platform.Strut
	Urgent       bool
}

// WindowTracker follows window lifecycle and property events so the daemon
// can report managed windows and notice state drift.
type WindowTracker struct {
	mu      sync.RWMutex
	windows map[platform.WindowHandle]*TrackedWindow
	modes   *platform.ModeState
	logger  *logging.Logger
}

// NewWindowTracker creates an empty tracker. When a window that is being
// dragged goes away, the drag is cancelled on modes.
func NewWindowTracker(modes *platform.ModeState, logger *logging.Logger) *WindowTracker {
	if logger == nil {
		logger = logging.Nop()
	}
	return &WindowTracker{
		windows: make(map[platform.WindowHandle]*TrackedWindow),
		modes:   modes,
		logger:  logger,
	}
}

// Handle updates tracked state. It never consumes the event.
func (t *WindowTracker) Handle(ev platform.Event) bool {
	switch e := ev.(type) {
	case platform.WindowCreate:
		t.add(e.Window)
	case platform.WindowDestroy:
		t.HandleWindowClosed(e.Window)
	case platform.WindowUpdate:
		t.update(e.Change)
	}
	return false
}

func (t *WindowTracker) add(w platform.Window) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.windows[w.Handle] = &TrackedWindow{
		Handle:       w.Handle,
		Name:         w.Name,
		Type:         w.Type,
		Transient:    w.Transient,
		FloatingSize: w.FloatingSize,
	}
	t.logger.Debug("window tracked", "window", w.Handle, "name", w.Name, "type", w.Type)
}

func (t *WindowTracker) update(c platform.WindowChange) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.windows[c.Window]
	if !ok {
		return // not managed
	}
	if c.Name != nil {
		w.Name = *c.Name
	}
	if c.Type != nil {
		w.Type = *c.Type
	}
	if c.Transient != nil {
		w.Transient = c.Transient
	}
	if c.FloatingSize != nil {
		w.FloatingSize = c.FloatingSize
	}
	if c.Strut != nil {
		w.Strut = c.Strut
	}
	if c.Urgent != nil {
		w.Urgent = *c.Urgent
	}
}

// HandleWindowClosed forgets a window and cancels a drag that targets it.
func (t *WindowTracker) HandleWindowClosed(h platform.WindowHandle) {
	t.mu.Lock()
	_, ok := t.windows[h]
	delete(t.windows, h)
	t.mu.Unlock()

	if t.modes != nil {
		if m := t.modes.Current(); m.Kind != platform.ModeNormal && m.Window == h {
			t.modes.Reset()
			t.logger.Info("drag cancelled, window closed", "window", h)
		}
	}
	if ok {
		t.logger.Debug("window forgotten", "window", h)
	}
}

// Lookup returns a copy of the tracked state of h.
func (t *WindowTracker) Lookup(h platform.WindowHandle) (TrackedWindow, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	w, ok := t.windows[h]
	if !ok {
		return TrackedWindow{}, false
	}
	return *w, true
}

// Windows returns every tracked window ordered by id.
func (t *WindowTracker) Windows() []TrackedWindow {
	t.mu.RLock()
	out := make([]TrackedWindow, 0, len(t.windows))
	for _, w := range t.windows {
		out = append(out, *w)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Handle.XID() < out[j].Handle.XID()
	})
	return out
}

// IsManaged reports whether h is a tracked client window.
func (t *WindowTracker) IsManaged(h platform.WindowHandle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.windows[h]
	return ok
}

// Len returns the number of tracked windows.
func (t *WindowTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.windows)
}

package daemon

import (
	"sync"
	"time"

	"github.com/1broseidon/tilewm/internal/platform"
)

// Record is one translated event as seen by the loop.
type Record struct {
	At    time.Time
	Event platform.Event
}

// EventRecorder keeps the most recent translated events in a fixed-size ring.
// It never consumes events, so it can sit first in a Chain.
type EventRecorder struct {
	mu    sync.Mutex
	buf   []Record
	next  int
	full  bool
	now   func() time.Time
	total uint64
}

// NewEventRecorder creates a recorder holding up to size events. A size of
// zero disables recording.
func NewEventRecorder(size int) *EventRecorder {
	if size < 0 {
		size = 0
	}
	return &EventRecorder{
		buf: make([]Record, size),
		now: time.Now,
	}
}

// Handle records ev and passes it on.
func (r *EventRecorder) Handle(ev platform.Event) bool {
	r.Record(ev)
	return false
}

// Record appends ev, overwriting the oldest entry once full.
func (r *EventRecorder) Record(ev platform.Event) {
	if ev == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total++
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.next] = Record{At: r.now(), Event: ev}
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Snapshot returns the retained events, oldest first.
func (r *EventRecorder) Snapshot() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]Record(nil), r.buf[:r.next]...)
	}
	out := make([]Record, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)
	return out
}

// Total returns how many events have been recorded, including evicted ones.
func (r *EventRecorder) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

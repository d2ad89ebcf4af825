package daemon

import (
	"testing"
	"time"

	"github.com/1broseidon/tilewm/internal/platform"
)

func tags(records []Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.Event.(platform.GoToTag).Tag)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEventRecorder_Ring(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		record int
		want   []int
	}{
		{"empty", 3, 0, []int{}},
		{"partial", 3, 2, []int{0, 1}},
		{"exactly full", 3, 3, []int{0, 1, 2}},
		{"wrapped", 3, 5, []int{2, 3, 4}},
		{"wrapped twice", 2, 7, []int{5, 6}},
		{"disabled", 0, 4, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEventRecorder(tt.size)
			for i := 0; i < tt.record; i++ {
				r.Record(platform.GoToTag{Tag: i})
			}
			if got := tags(r.Snapshot()); !equalInts(got, tt.want) {
				t.Fatalf("Snapshot() = %v, want %v", got, tt.want)
			}
			if got := r.Total(); got != uint64(tt.record) {
				t.Fatalf("Total() = %d, want %d", got, tt.record)
			}
		})
	}
}

func TestEventRecorder_HandlePassesThrough(t *testing.T) {
	r := NewEventRecorder(4)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	if r.Handle(platform.GoToTag{Tag: 1}) {
		t.Fatal("Handle() consumed the event")
	}
	r.Record(nil)

	snap := r.Snapshot()
	if len(snap) != 1 || !snap[0].At.Equal(fixed) {
		t.Fatalf("Snapshot() = %+v", snap)
	}
}

func TestEventRecorder_SnapshotIsCopy(t *testing.T) {
	r := NewEventRecorder(2)
	r.Record(platform.GoToTag{Tag: 1})
	snap := r.Snapshot()
	r.Record(platform.GoToTag{Tag: 2})
	r.Record(platform.GoToTag{Tag: 3})

	if got := tags(snap); !equalInts(got, []int{1}) {
		t.Fatalf("earlier snapshot changed to %v", got)
	}
}

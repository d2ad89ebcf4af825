package daemon

import (
	"testing"

	"github.com/1broseidon/tilewm/internal/platform"
)

func createEvent(xid uint32, name string) platform.WindowCreate {
	return platform.WindowCreate{Window: platform.NewWindow(platform.XlibHandle(xid), name)}
}

func TestWindowTracker_Lifecycle(t *testing.T) {
	tr := NewWindowTracker(platform.NewModeState(), nil)

	tr.Handle(createEvent(0x30, "b"))
	tr.Handle(createEvent(0x10, "a"))
	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}

	wins := tr.Windows()
	if wins[0].Handle.XID() != 0x10 || wins[1].Handle.XID() != 0x30 {
		t.Fatalf("Windows() not ordered by id: %+v", wins)
	}

	if tr.Handle(platform.WindowDestroy{Window: platform.XlibHandle(0x10)}) {
		t.Fatal("tracker consumed an event")
	}
	if _, ok := tr.Lookup(platform.XlibHandle(0x10)); ok {
		t.Fatal("destroyed window still tracked")
	}

	// Destroy of an unknown window is harmless.
	tr.Handle(platform.WindowDestroy{Window: platform.XlibHandle(0x99)})
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestWindowTracker_Updates(t *testing.T) {
	h := platform.XlibHandle(0x10)
	tr := NewWindowTracker(nil, nil)
	tr.Handle(createEvent(0x10, "old"))

	name := "new"
	urgent := true
	dock := platform.WindowTypeDock
	strut := platform.Strut{Top: 20}
	for _, c := range []platform.WindowChange{
		{Window: h, Name: &name},
		{Window: h, Urgent: &urgent},
		{Window: h, Type: &dock},
		{Window: h, Strut: &strut},
		{Window: platform.XlibHandle(0x77), Name: &name},
	} {
		tr.Handle(platform.WindowUpdate{Change: c})
	}

	w, ok := tr.Lookup(h)
	if !ok {
		t.Fatal("window not tracked")
	}
	if w.Name != "new" || !w.Urgent || w.Type != platform.WindowTypeDock || w.Strut == nil || w.Strut.Top != 20 {
		t.Fatalf("tracked window = %+v", w)
	}
	if _, ok := tr.Lookup(platform.XlibHandle(0x77)); ok {
		t.Fatal("update created an untracked window")
	}
}

func TestWindowTracker_ClosingDraggedWindowCancelsDrag(t *testing.T) {
	h := platform.XlibHandle(0x10)
	modes := platform.NewModeState()
	tr := NewWindowTracker(modes, nil)
	tr.Handle(createEvent(0x10, "dragged"))

	modes.BeginMove(platform.XlibHandle(0x20), platform.Point{})
	tr.HandleWindowClosed(h)
	if !modes.IsActive() {
		t.Fatal("closing an unrelated window cancelled the drag")
	}

	modes.BeginResize(h, platform.Point{})
	tr.HandleWindowClosed(h)
	if modes.IsActive() {
		t.Fatalf("mode = %v, want normal after the dragged window closed", modes.Current())
	}
}

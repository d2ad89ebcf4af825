package daemon

import (
	"errors"
	"testing"

	"github.com/1broseidon/tilewm/internal/platform"
)

func TestReconciler_DropsStaleWindows(t *testing.T) {
	tr := NewWindowTracker(nil, nil)
	tr.Handle(createEvent(0x10, "alive"))
	tr.Handle(createEvent(0x20, "gone"))

	r := NewReconciler(ReconcilerConfig{}, tr, func() ([]platform.WindowHandle, error) {
		return []platform.WindowHandle{platform.XlibHandle(0x10), platform.XlibHandle(0x99)}, nil
	})

	if got := r.ReconcileNow(); got != 1 {
		t.Fatalf("ReconcileNow() = %d, want 1", got)
	}
	if _, ok := tr.Lookup(platform.XlibHandle(0x20)); ok {
		t.Fatal("stale window still tracked")
	}
	if _, ok := tr.Lookup(platform.XlibHandle(0x10)); !ok {
		t.Fatal("live window dropped")
	}
}

func TestReconciler_ListErrorKeepsState(t *testing.T) {
	tr := NewWindowTracker(nil, nil)
	tr.Handle(createEvent(0x10, "a"))

	r := NewReconciler(ReconcilerConfig{}, tr, func() ([]platform.WindowHandle, error) {
		return nil, errors.New("connection closed")
	})
	if got := r.ReconcileNow(); got != 0 {
		t.Fatalf("ReconcileNow() = %d, want 0", got)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestReconciler_RecoversFromPanic(t *testing.T) {
	tr := NewWindowTracker(nil, nil)
	tr.Handle(createEvent(0x10, "a"))

	r := NewReconciler(ReconcilerConfig{}, tr, func() ([]platform.WindowHandle, error) {
		panic("send on closed channel")
	})
	if got := r.ReconcileNow(); got != 0 {
		t.Fatalf("ReconcileNow() = %d, want 0", got)
	}
}

func TestReconciler_SkipsListingWhenNothingTracked(t *testing.T) {
	called := false
	r := NewReconciler(ReconcilerConfig{}, NewWindowTracker(nil, nil), func() ([]platform.WindowHandle, error) {
		called = true
		return nil, nil
	})
	r.ReconcileNow()
	if called {
		t.Fatal("listed windows with an empty tracker")
	}
}

package daemon

import (
	"testing"

	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
)

type fixedPointer struct {
	at platform.Point
	ok bool
}

func (p fixedPointer) PointerLocation() (platform.Point, bool) { return p.at, p.ok }

var testBindings = DragBindings{
	Move:   platform.ButtonGrab{Modifiers: xproto.ModMask4, Button: 1},
	Resize: platform.ButtonGrab{Modifiers: xproto.ModMask4, Button: 3},
}

func TestDragPolicy_MouseCombo(t *testing.T) {
	w := platform.XlibHandle(0x20)
	at := platform.Point{X: 100, Y: 100}

	tests := []struct {
		name     string
		combo    platform.MouseCombo
		consumed bool
		want     platform.Mode
	}{
		{
			name:     "move binding",
			combo:    platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 1, Window: w},
			consumed: true,
			want:     platform.MovingMode(w, at),
		},
		{
			name:     "resize binding",
			combo:    platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 3, Window: w},
			consumed: true,
			want:     platform.ResizingMode(w, at),
		},
		{
			name:     "caps and num lock ignored",
			combo:    platform.MouseCombo{Modifiers: xproto.ModMask4 | xproto.ModMaskLock | xproto.ModMask2, Button: 1, Window: w},
			consumed: true,
			want:     platform.MovingMode(w, at),
		},
		{
			name:     "button state bits ignored",
			combo:    platform.MouseCombo{Modifiers: xproto.ModMask4 | xproto.KeyButMaskButton1, Button: 1, Window: w},
			consumed: true,
			want:     platform.MovingMode(w, at),
		},
		{
			name:  "missing modifier",
			combo: platform.MouseCombo{Button: 1, Window: w},
			want:  platform.NormalMode(),
		},
		{
			name:  "extra modifier",
			combo: platform.MouseCombo{Modifiers: xproto.ModMask4 | xproto.ModMaskShift, Button: 1, Window: w},
			want:  platform.NormalMode(),
		},
		{
			name:  "other button",
			combo: platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 2, Window: w},
			want:  platform.NormalMode(),
		},
		{
			name:  "root window",
			combo: platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 1},
			want:  platform.NormalMode(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modes := platform.NewModeState()
			p := NewDragPolicy(testBindings, modes, fixedPointer{at: at, ok: true}, nil, nil)

			if got := p.Handle(tt.combo); got != tt.consumed {
				t.Fatalf("Handle() = %v, want %v", got, tt.consumed)
			}
			if got := modes.Current(); got != tt.want {
				t.Fatalf("mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragPolicy_CustomLockMods(t *testing.T) {
	w := platform.XlibHandle(0x20)
	b := testBindings
	b.LockMods = xproto.ModMaskLock | xproto.ModMask3

	modes := platform.NewModeState()
	p := NewDragPolicy(b, modes, fixedPointer{ok: true}, nil, nil)

	if p.Handle(platform.MouseCombo{Modifiers: xproto.ModMask4 | xproto.ModMask2, Button: 1, Window: w}) {
		t.Fatal("Mod2 should distinguish bindings when it is not a lock modifier")
	}
	if !p.Handle(platform.MouseCombo{Modifiers: xproto.ModMask4 | xproto.ModMask3, Button: 1, Window: w}) {
		t.Fatal("Mod3 lock bit should be ignored")
	}
}

func TestDragPolicy_NoPointer(t *testing.T) {
	modes := platform.NewModeState()
	p := NewDragPolicy(testBindings, modes, fixedPointer{}, nil, nil)

	if p.Handle(platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 1, Window: platform.XlibHandle(1)}) {
		t.Fatal("Handle() consumed combo without a pointer location")
	}
	if modes.IsActive() {
		t.Fatalf("mode = %v, want normal", modes.Current())
	}
}

func TestDragPolicy_DragRequest(t *testing.T) {
	w := platform.XlibHandle(0x30)
	origin := platform.Point{X: 300, Y: 200}
	modes := platform.NewModeState()
	p := NewDragPolicy(testBindings, modes, fixedPointer{}, nil, nil)

	if !p.Handle(platform.DragRequest{Window: w, Kind: platform.DragResize, Origin: origin}) {
		t.Fatal("Handle(DragRequest) = false")
	}
	if got, want := modes.Current(), platform.ResizingMode(w, origin); got != want {
		t.Fatalf("mode = %v, want %v", got, want)
	}

	if !p.Handle(platform.DragRequest{Window: w, Kind: platform.DragMove, Origin: origin}) {
		t.Fatal("Handle(DragRequest) = false")
	}
	if got, want := modes.Current(), platform.MovingMode(w, origin); got != want {
		t.Fatalf("mode = %v, want %v", got, want)
	}
}

func TestDragPolicy_IgnoresOtherEvents(t *testing.T) {
	modes := platform.NewModeState()
	p := NewDragPolicy(testBindings, modes, fixedPointer{ok: true}, nil, nil)

	for _, ev := range []platform.Event{
		platform.KeyCombo{Modifiers: xproto.ModMask4, Keysym: 1},
		platform.Movement{X: 1, Y: 1},
		platform.ChangeToNormalMode{},
	} {
		if p.Handle(ev) {
			t.Fatalf("Handle(%v) = true", ev)
		}
	}
	if modes.IsActive() {
		t.Fatalf("mode = %v, want normal", modes.Current())
	}
}

func TestDragPolicy_UnmanagedWindows(t *testing.T) {
	root := platform.XlibHandle(0x1e6)
	client := platform.XlibHandle(0x400001)
	at := platform.Point{X: 5, Y: 5}

	modes := platform.NewModeState()
	tracker := NewWindowTracker(modes, nil)
	tracker.Handle(platform.WindowCreate{Window: platform.NewWindow(client, "term")})
	policy := NewDragPolicy(testBindings, modes, fixedPointer{at: at, ok: true}, tracker, nil)
	chain := Chain{tracker, policy}

	if chain.Handle(platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 1, Window: root}) {
		t.Fatal("combo on the root window started a drag")
	}
	if chain.Handle(platform.DragRequest{Window: root, Kind: platform.DragMove, Origin: at}) {
		t.Fatal("drag request for an unmanaged window was accepted")
	}
	if modes.IsActive() {
		t.Fatalf("mode = %v, want normal", modes.Current())
	}

	if !chain.Handle(platform.MouseCombo{Modifiers: xproto.ModMask4, Button: 1, Window: client}) {
		t.Fatal("combo on a managed window did not start a drag")
	}
	if got, want := modes.Current(), platform.MovingMode(client, at); got != want {
		t.Fatalf("mode = %v, want %v", got, want)
	}
}

package translate

import (
	"errors"
	"fmt"

	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/google/go-cmp/cmp"
)

var handleComparer = cmp.Comparer(func(a, b platform.WindowHandle) bool { return a == b })

// diffEvent reports the difference between two translated events.
func diffEvent(want, got platform.Event) string {
	return cmp.Diff(want, got, handleComparer)
}

// fakeBackend answers queries from fixed tables and records calls.
type fakeBackend struct {
	calls []string

	attrs      map[uint32]platform.WindowAttrs
	names      map[uint32]string
	transients map[uint32]platform.WindowHandle
	sizes      map[uint32]platform.Size
	types      map[uint32]platform.WindowType
	struts     map[uint32]platform.Strut
	urgent     map[uint32]bool
	atoms      map[uint32]string
	keysyms    map[uint8]uint32

	pointer    platform.Point
	hasPointer bool
	mode       platform.Mode
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		attrs:      map[uint32]platform.WindowAttrs{},
		names:      map[uint32]string{},
		transients: map[uint32]platform.WindowHandle{},
		sizes:      map[uint32]platform.Size{},
		types:      map[uint32]platform.WindowType{},
		struts:     map[uint32]platform.Strut{},
		urgent:     map[uint32]bool{},
		atoms:      map[uint32]string{},
		keysyms:    map[uint8]uint32{},
		mode:       platform.NormalMode(),
	}
}

// atom registers name and returns its id.
func (b *fakeBackend) atom(name string) uint32 {
	for id, n := range b.atoms {
		if n == name {
			return id
		}
	}
	id := uint32(len(b.atoms) + 100)
	b.atoms[id] = name
	return id
}

func (b *fakeBackend) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *fakeBackend) SubscribeToWindowEvents(h platform.WindowHandle) {
	b.record("subscribe %s", h)
}

func (b *fakeBackend) WindowAttrs(h platform.WindowHandle) (platform.WindowAttrs, error) {
	b.record("attrs %s", h)
	a, ok := b.attrs[h.XID()]
	if !ok {
		return platform.WindowAttrs{}, errors.New("BadWindow")
	}
	return a, nil
}

func (b *fakeBackend) WindowName(h platform.WindowHandle) string {
	b.record("name %s", h)
	return b.names[h.XID()]
}

func (b *fakeBackend) TransientFor(h platform.WindowHandle) (platform.WindowHandle, bool) {
	b.record("transient %s", h)
	p, ok := b.transients[h.XID()]
	return p, ok
}

func (b *fakeBackend) HintSizing(h platform.WindowHandle) (platform.Size, bool) {
	b.record("sizing %s", h)
	s, ok := b.sizes[h.XID()]
	return s, ok
}

func (b *fakeBackend) WindowType(h platform.WindowHandle) platform.WindowType {
	b.record("type %s", h)
	if t, ok := b.types[h.XID()]; ok {
		return t
	}
	return platform.WindowTypeNormal
}

func (b *fakeBackend) PointerLocation() (platform.Point, bool) {
	b.record("pointer")
	return b.pointer, b.hasPointer
}

func (b *fakeBackend) KeycodeToKeysym(code uint8) uint32 {
	b.record("keysym %d", code)
	return b.keysyms[code]
}

func (b *fakeBackend) AtomName(atom uint32) (string, bool) {
	b.record("atom %d", atom)
	n, ok := b.atoms[atom]
	return n, ok
}

func (b *fakeBackend) Strut(h platform.WindowHandle) (platform.Strut, bool) {
	b.record("strut %s", h)
	s, ok := b.struts[h.XID()]
	return s, ok
}

func (b *fakeBackend) Urgent(h platform.WindowHandle) bool {
	b.record("urgent %s", h)
	return b.urgent[h.XID()]
}

func (b *fakeBackend) Mode() platform.Mode {
	b.record("mode")
	return b.mode
}

package daemon

import (
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
)

// WindowMapper maps client windows.
type WindowMapper interface {
	MapWindow(h platform.WindowHandle) error
}

// MapOnCreate maps every window as soon as it is announced. With
// substructure redirection held, clients stay invisible until someone does.
type MapOnCreate struct {
	mapper WindowMapper
	logger *logging.Logger
}

func NewMapOnCreate(mapper WindowMapper, logger *logging.Logger) *MapOnCreate {
	if logger == nil {
		logger = logging.Nop()
	}
	return &MapOnCreate{mapper: mapper, logger: logger}
}

// Handle maps the window of a WindowCreate. It never consumes the event.
func (m *MapOnCreate) Handle(ev platform.Event) bool {
	e, ok := ev.(platform.WindowCreate)
	if !ok {
		return false
	}
	if err := m.mapper.MapWindow(e.Window.Handle); err != nil {
		m.logger.Warn("map failed", "window", e.Window.Handle, "error", err.Error())
	}
	return false
}

// Adopter builds the record of a window that existed before startup.
type Adopter interface {
	Adopt(h platform.WindowHandle) (platform.Window, bool)
}

// AdoptExisting announces every adoptable top-level window to handler as a
// WindowCreate and returns how many were adopted.
func AdoptExisting(list WindowLister, adopter Adopter, handler Handler) (int, error) {
	handles, err := list()
	if err != nil {
		return 0, err
	}
	adopted := 0
	for _, h := range handles {
		w, ok := adopter.Adopt(h)
		if !ok {
			continue
		}
		handler.Handle(platform.WindowCreate{Window: w})
		adopted++
	}
	return adopted, nil
}

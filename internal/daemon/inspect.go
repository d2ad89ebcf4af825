package daemon

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/platform"
)

// Inspector exposes daemon state over IPC.
type Inspector struct {
	modes   *platform.ModeState
	tracker *WindowTracker
	history *EventRecorder
}

var _ ipc.Inspector = (*Inspector)(nil)

// NewInspector creates an inspector over the daemon's live state.
func NewInspector(modes *platform.ModeState, tracker *WindowTracker, history *EventRecorder) *Inspector {
	return &Inspector{modes: modes, tracker: tracker, history: history}
}

func (i *Inspector) Status() ipc.StatusData {
	m := i.modes.Current()
	return ipc.StatusData{
		Mode:        m.Kind.String(),
		ModeWindow:  m.Window.XID(),
		WindowCount: i.tracker.Len(),
		EventsTotal: i.history.Total(),
	}
}

// History returns the newest limit events, oldest first. Zero means all.
func (i *Inspector) History(limit int) []ipc.HistoryEntry {
	records := i.history.Snapshot()
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]ipc.HistoryEntry, 0, len(records))
	for _, r := range records {
		out = append(out, ipc.HistoryEntry{
			UnixMilli: r.At.UnixMilli(),
			Kind:      EventKind(r.Event),
			Event:     r.Event.String(),
		})
	}
	return out
}

func (i *Inspector) Windows() []ipc.WindowInfo {
	tracked := i.tracker.Windows()
	out := make([]ipc.WindowInfo, 0, len(tracked))
	for _, w := range tracked {
		out = append(out, ipc.WindowInfo{
			ID:     w.Handle.XID(),
			Name:   w.Name,
			Type:   w.Type.String(),
			Urgent: w.Urgent,
		})
	}
	return out
}

func (i *Inspector) ResetMode() {
	i.modes.Reset()
}

// EventKind names the variant of ev, e.g. "MoveWindow".
func EventKind(ev platform.Event) string {
	name := fmt.Sprintf("%T", ev)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

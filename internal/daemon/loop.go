package daemon

import (
	"context"
	"sync"

	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/BurntSushi/xgb"
)

// EventSource delivers raw events one at a time. NextEvent returns nil, nil
// once the source is closed.
type EventSource interface {
	NextEvent() (xgb.Event, error)
}

// Translator converts one raw event; nil means no event.
type Translator interface {
	Translate(raw xgb.Event) platform.Event
}

// Handler consumes translated events. It reports whether it consumed the
// event so later handlers in a Chain can skip it.
type Handler interface {
	Handle(ev platform.Event) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev platform.Event) bool

func (f HandlerFunc) Handle(ev platform.Event) bool {
	return f(ev)
}

// Chain offers each event to handlers in order until one consumes it.
type Chain []Handler

func (c Chain) Handle(ev platform.Event) bool {
	for _, h := range c {
		if h != nil && h.Handle(ev) {
			return true
		}
	}
	return false
}

// RequestForwarder grants redirected requests the window manager has no
// policy for. It reports whether raw was one.
type RequestForwarder interface {
	ForwardRequest(raw xgb.Event) (bool, error)
}

// LoopConfig holds the collaborators of a Loop.
type LoopConfig struct {
	Source     EventSource
	Translator Translator
	Modes      *platform.ModeState
	Handler    Handler
	Forwarder  RequestForwarder
	Logger     *logging.Logger
	// Close unblocks Source.NextEvent when the context is cancelled.
	Close func()
}

// Loop pulls raw events, translates each to completion, and dispatches the
// result. It is the single owner of the display connection while running.
type Loop struct {
	source     EventSource
	translator Translator
	modes      *platform.ModeState
	handler    Handler
	forwarder  RequestForwarder
	logger     *logging.Logger
	close      func()
}

// NewLoop creates an event loop from cfg.
func NewLoop(cfg LoopConfig) *Loop {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	modes := cfg.Modes
	if modes == nil {
		modes = platform.NewModeState()
	}
	handler := cfg.Handler
	if handler == nil {
		handler = Chain{}
	}
	return &Loop{
		source:     cfg.Source,
		translator: cfg.Translator,
		modes:      modes,
		handler:    handler,
		forwarder:  cfg.Forwarder,
		logger:     logger,
		close:      cfg.Close,
	}
}

// Run processes events until the source closes or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			if l.close != nil {
				l.close()
			}
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	l.logger.Info("event loop started")
	for {
		raw, err := l.source.NextEvent()
		if err != nil {
			// X errors for requests on vanished windows are routine.
			l.logger.Debug("x error", "error", err.Error())
			continue
		}
		if raw == nil {
			l.logger.Info("event loop stopped")
			return ctx.Err()
		}
		l.Step(raw)
	}
}

// Step translates and dispatches a single raw event. A panic while doing so
// is logged and the event dropped; the loop must stay alive.
func (l *Loop) Step(raw xgb.Event) (ev platform.Event) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event dispatch panic recovered", nil, "panic", r, "raw", raw.String())
			ev = nil
		}
	}()

	if l.forwarder != nil {
		if ok, err := l.forwarder.ForwardRequest(raw); ok && err != nil {
			l.logger.Debug("request not forwarded", "error", err.Error(), "raw", raw.String())
		}
	}

	ev = l.translator.Translate(raw)
	if ev == nil {
		return nil
	}
	if _, ok := ev.(platform.ChangeToNormalMode); ok {
		l.modes.Reset()
	}
	l.handler.Handle(ev)
	return ev
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/daemon"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/translate"
	"github.com/1broseidon/tilewm/internal/x11"
)

const reconcileInterval = 10 * time.Second

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm run [--config PATH]")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config

	logger, err := logging.FromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logger.Close()

	if err := serve(cfg, logger); err != nil {
		logger.Error("daemon exited", err)
		return 1
	}
	return 0
}

func serve(cfg *config.Config, logger *logging.Logger) error {
	if cfg.Display != "" {
		os.Setenv("DISPLAY", cfg.Display)
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		return err
	}
	defer backend.Disconnect()

	if err := backend.Connection().BecomeManager(); err != nil {
		if errors.Is(err, x11.ErrAnotherWM) {
			return fmt.Errorf("cannot manage display: %w", err)
		}
		return err
	}

	move, err := backend.ParseButtonGrab(cfg.Bindings.Move)
	if err != nil {
		return err
	}
	resize, err := backend.ParseButtonGrab(cfg.Bindings.Resize)
	if err != nil {
		return err
	}
	backend.SetButtonGrabs(move, resize)
	logger.Info("drag bindings installed", "move", cfg.Bindings.Move, "resize", cfg.Bindings.Resize)

	modes := backend.ModeState()
	history := daemon.NewEventRecorder(cfg.History.Size)
	tracker := daemon.NewWindowTracker(modes, logger)
	policy := daemon.NewDragPolicy(daemon.DragBindings{
		Move:     move,
		Resize:   resize,
		LockMods: backend.LockMods(),
	}, modes, backend, tracker, logger)

	var sink translate.LogFunc
	if cfg.Logging.LogEvents {
		sink = logger.EventSink()
	}
	translator := translate.New(backend, sink)

	adopted, err := daemon.AdoptExisting(backend.TopLevelWindows, translator, tracker)
	if err != nil {
		logger.Warn("existing windows not adopted", "error", err.Error())
	} else {
		logger.Info("existing windows adopted", "count", adopted)
	}

	loop := daemon.NewLoop(daemon.LoopConfig{
		Source:     backend,
		Translator: translator,
		Modes:      modes,
		Handler:    daemon.Chain{history, tracker, daemon.NewMapOnCreate(backend, logger), policy},
		Forwarder:  backend,
		Logger:     logger,
		Close:      backend.Disconnect,
	})

	ipcServer, err := ipc.NewServer(daemon.NewInspector(modes, tracker, history), logger)
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := ipcServer.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: reconcileInterval,
		Logger:   logger,
	}, tracker, backend.TopLevelWindows)
	go reconciler.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGUSR1:
					dumpHistory(logger, history)
				default:
					logger.Info("shutting down", "signal", sig.String())
					cancel()
					return
				}
			}
		}
	}()

	switch err := loop.Run(ctx); {
	case errors.Is(err, context.Canceled):
		return nil
	case err == nil:
		return errors.New("display connection closed")
	default:
		return err
	}
}

func dumpHistory(logger *logging.Logger, history *daemon.EventRecorder) {
	records := history.Snapshot()
	logger.Info("event history", "retained", len(records), "total", history.Total())
	for _, r := range records {
		logger.Info("event", "at", r.At.Format(time.RFC3339Nano), "kind", daemon.EventKind(r.Event), "event", r.Event)
	}
}

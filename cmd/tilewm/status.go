package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1broseidon/tilewm/internal/ipc"
)

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print raw JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(status)
	}

	fmt.Printf("Mode: %s", status.Mode)
	if status.ModeWindow != 0 {
		fmt.Printf(" (window 0x%x)", status.ModeWindow)
	}
	fmt.Println()
	fmt.Printf("Windows: %d\n", status.WindowCount)
	fmt.Printf("Events: %d\n", status.EventsTotal)
	fmt.Printf("Uptime: %s\n", time.Duration(status.UptimeSeconds)*time.Second)
	return 0
}

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	limit := fs.Int("limit", 0, "Show only the newest N events (0 = all retained)")
	asJSON := fs.Bool("json", false, "Print raw JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm history [--limit N] [--json]")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *limit < 0 {
		fmt.Fprintln(os.Stderr, "--limit must not be negative")
		return 2
	}

	data, err := ipc.NewClient().GetHistory(*limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(data)
	}
	for _, ev := range data.Events {
		at := time.UnixMilli(ev.UnixMilli).Format("15:04:05.000")
		fmt.Printf("%s  %s\n", at, ev.Event)
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print raw JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	data, err := ipc.NewClient().GetWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(data)
	}
	for _, w := range data.Windows {
		urgent := ""
		if w.Urgent {
			urgent = " [urgent]"
		}
		fmt.Printf("0x%08x  %-8s %s%s\n", w.ID, w.Type, w.Name, urgent)
	}
	return 0
}

func runResetMode(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "Usage: tilewm reset-mode")
		return 2
	}
	if err := ipc.NewClient().ResetMode(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

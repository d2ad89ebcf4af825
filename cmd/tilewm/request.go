package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// requestAliases maps short names to the client message types the window
// manager understands.
var requestAliases = map[string]string{
	"activate":   "_NET_ACTIVE_WINDOW",
	"close":      "_NET_CLOSE_WINDOW",
	"state":      "_NET_WM_STATE",
	"desktop":    "_NET_WM_DESKTOP",
	"goto":       "_NET_CURRENT_DESKTOP",
	"moveresize": "_NET_MOVERESIZE_WINDOW",
	"drag":       "_NET_WM_MOVERESIZE",
	"minimize":   "WM_CHANGE_STATE",
}

func runRequest(args []string) int {
	fs := flag.NewFlagSet("request", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	window := fs.String("window", "", "Target window id (decimal or 0x hex)")
	title := fs.String("title", "", "Target the first client whose title contains this text")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm request <type> [--window ID | --title TEXT] [word...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Send a 32-bit client message to the root window. <type> is an atom")
		fmt.Fprintln(os.Stderr, "name such as _NET_CLOSE_WINDOW or one of: activate, close, state,")
		fmt.Fprintln(os.Stderr, "desktop, goto, moveresize, drag, minimize. Words may be numbers or")
		fmt.Fprintln(os.Stderr, "atom names; at most five are sent.")
		fs.PrintDefaults()
	}
	if len(args) == 0 {
		fs.Usage()
		return 2
	}
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fs.Usage()
		return 0
	}

	msgType := resolveRequestType(args[0])
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *window != "" && *title != "" {
		fmt.Fprintln(os.Stderr, "--window and --title are mutually exclusive")
		return 2
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to X11: %v\n", err)
		return 1
	}
	defer conn.Close()

	var target uint32
	switch {
	case *window != "":
		v, err := strconv.ParseUint(*window, 0, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid window id %q: %v\n", *window, err)
			return 2
		}
		target = uint32(v)
	case *title != "":
		target, err = conn.FindWindowByTitle(*title)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	words, err := parseRequestWords(fs.Args(), func(name string) (uint32, error) {
		atom, err := conn.Atom(name)
		return uint32(atom), err
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := conn.SendRequest(xproto.Window(target), msgType, words...); err != nil {
		fmt.Fprintf(os.Stderr, "failed to send %s: %v\n", msgType, err)
		return 1
	}
	return 0
}

func resolveRequestType(name string) string {
	if t, ok := requestAliases[strings.ToLower(name)]; ok {
		return t
	}
	return name
}

// parseRequestWords converts numeric words (decimal, 0x hex, or negative)
// and atom names into 32-bit data words.
func parseRequestWords(args []string, intern func(string) (uint32, error)) ([]uint32, error) {
	if len(args) > 5 {
		return nil, fmt.Errorf("at most 5 data words, got %d", len(args))
	}
	words := make([]uint32, 0, len(args))
	for _, arg := range args {
		if v, err := strconv.ParseInt(arg, 0, 64); err == nil {
			if v < -1<<31 || v > 1<<32-1 {
				return nil, fmt.Errorf("word %q out of 32-bit range", arg)
			}
			words = append(words, uint32(v))
			continue
		}
		atom, err := intern(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to intern %q: %w", arg, err)
		}
		words = append(words, atom)
	}
	return words, nil
}

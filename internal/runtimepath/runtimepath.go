package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the runtime directory used by the daemon IPC socket. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/tilewm-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/tilewm-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the daemon IPC socket path for the current display.
// TILEWM_SOCKET overrides it.
func SocketPath() (string, error) {
	return SocketPathFor(os.Getenv("DISPLAY"))
}

// SocketPathFor returns the socket path of the daemon managing display. Each
// display gets its own socket so nested servers do not collide.
func SocketPathFor(display string) (string, error) {
	if p := os.Getenv("TILEWM_SOCKET"); p != "" {
		return p, nil
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	name := "tilewm.sock"
	if d := sanitizeDisplay(display); d != "" {
		name = "tilewm-" + d + ".sock"
	}
	return filepath.Join(runtimeDir, name), nil
}

// sanitizeDisplay turns ":1.0" or "host:1" into a file-name-safe token.
func sanitizeDisplay(display string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ':' || r == '.' || r == '-' || r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(display))
}

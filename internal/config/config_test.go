package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}
	if res.File != "" {
		t.Fatalf("File = %q, want empty", res.File)
	}
	def := DefaultConfig()
	if res.Config.Bindings != def.Bindings || res.Config.History != def.History || res.Config.Logging.Level != def.Logging.Level {
		t.Fatalf("Config = %+v, want defaults %+v", res.Config, def)
	}
}

func TestLoadFromPath_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  console: false
  log_events: true
bindings:
  move: Mod1-1
history:
  size: 32
`)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}
	cfg := res.Config
	if cfg.Logging.Level != "debug" || !cfg.Logging.LogEvents || cfg.Logging.GetConsole() {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
	if cfg.Bindings.Move != "Mod1-1" {
		t.Fatalf("Bindings.Move = %q", cfg.Bindings.Move)
	}
	if cfg.Bindings.Resize != DefaultResizeBinding {
		t.Fatalf("Bindings.Resize = %q, want default %q", cfg.Bindings.Resize, DefaultResizeBinding)
	}
	if cfg.History.Size != 32 {
		t.Fatalf("History.Size = %d", cfg.History.Size)
	}
	if src, ok := res.Sources["bindings.move"]; !ok || src.Line == 0 || src.File != path {
		t.Fatalf("Sources[bindings.move] = %+v, %v", src, ok)
	}
}

func TestLoadFromPath_EmptyFile(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}
	if res.Config.History.Size != DefaultHistorySize {
		t.Fatalf("History.Size = %d, want default", res.Config.History.Size)
	}
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "gap_size: 4\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "gap_size") {
		t.Fatalf("error %q does not name the key", err)
	}
}

func TestLoadFromPath_ValidationErrorCarriesPosition(t *testing.T) {
	path := writeConfig(t, "history:\n  size: -1\n")
	_, err := LoadFromPath(path)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if verr.Path != "history.size" {
		t.Fatalf("Path = %q, want history.size", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("Source.Line = %d, want 2", verr.Source.Line)
	}
	if !strings.HasPrefix(err.Error(), path+":2:") {
		t.Fatalf("Error() = %q, want file:line prefix", err.Error())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"warning alias", func(c *Config) { c.Logging.Level = "WARNING" }, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"empty move", func(c *Config) { c.Bindings.Move = " " }, "bindings.move"},
		{"empty resize", func(c *Config) { c.Bindings.Resize = "" }, "bindings.resize"},
		{"same bindings", func(c *Config) { c.Bindings.Resize = "mod4-1" }, "bindings.resize"},
		{"history disabled", func(c *Config) { c.History.Size = 0 }, ""},
		{"history too big", func(c *Config) { c.History.Size = MaxHistorySize + 1 }, "history.size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.wantKey {
				t.Fatalf("Validate() = %v, want error at %s", err, tt.wantKey)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Bindings.Move = "Mod1-1"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}
	if res.Config.Bindings.Move != "Mod1-1" {
		t.Fatalf("Bindings.Move = %q after round trip", res.Config.Bindings.Move)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, err := DefaultConfigPath(); err != nil || got != "/xdg/tilewm/config.yaml" {
		t.Fatalf("DefaultConfigPath() = %q, %v; want /xdg/tilewm/config.yaml", got, err)
	}

	t.Setenv(ConfigEnv, "/etc/tilewm.yaml")
	if got, err := DefaultConfigPath(); err != nil || got != "/etc/tilewm.yaml" {
		t.Fatalf("DefaultConfigPath() = %q, %v; want override", got, err)
	}
}

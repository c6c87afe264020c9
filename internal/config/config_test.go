package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.PollIntervalMS != 2000 || cfg.PickerCommand != "zenity" || cfg.RecentLimit != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromPath_EmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollIntervalMS != 2000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, `
log_level: debug
poll_interval_ms: 500
picker_command: kdialog
recent_limit: 10
workspace_dir: /tmp/ws
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.PollIntervalMS != 500 ||
		cfg.PickerCommand != "kdialog" || cfg.RecentLimit != 10 || cfg.WorkspaceDir != "/tmp/ws" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.PollInterval() != 500*time.Millisecond {
		t.Fatalf("PollInterval() = %v", cfg.PollInterval())
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "no_such_key: true\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"poll too small", func(c *Config) { c.PollIntervalMS = 50 }, "poll_interval_ms"},
		{"empty picker", func(c *Config) { c.PickerCommand = "" }, "picker_command"},
		{"zero recent limit", func(c *Config) { c.RecentLimit = 0 }, "recent_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

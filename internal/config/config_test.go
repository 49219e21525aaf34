package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Shell.Binary != "powershell.exe" {
		t.Errorf("Shell.Binary = %q, want powershell.exe", cfg.Shell.Binary)
	}
	if cfg.Shell.FallbackBinary != "pwsh" {
		t.Errorf("Shell.FallbackBinary = %q, want pwsh", cfg.Shell.FallbackBinary)
	}
	if cfg.Shell.ModulePath != DefaultModulePath {
		t.Errorf("Shell.ModulePath = %q", cfg.Shell.ModulePath)
	}
	if cfg.Shell.TimeoutSeconds != 120 {
		t.Errorf("Shell.TimeoutSeconds = %d, want 120", cfg.Shell.TimeoutSeconds)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Auth.Enabled {
		t.Error("auth should be disabled by default")
	}
	if !cfg.History.Enabled {
		t.Error("history should be enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Shell.TimeoutSeconds != 120 {
		t.Errorf("missing file should yield defaults, got timeout %d", cfg.Shell.TimeoutSeconds)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".becat")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}

	raw := `{
  "version": 1,
  "shell": {"binary": "pwsh", "timeoutSeconds": 30},
  "server": {"port": 8081},
  "search": {"lookbackYears": 5}
}`
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Shell.Binary != "pwsh" {
		t.Errorf("Shell.Binary = %q, want pwsh", cfg.Shell.Binary)
	}
	if cfg.Shell.TimeoutSeconds != 30 {
		t.Errorf("Shell.TimeoutSeconds = %d, want 30", cfg.Shell.TimeoutSeconds)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Search.LookbackYears != 5 {
		t.Errorf("Search.LookbackYears = %d, want 5", cfg.Search.LookbackYears)
	}
	// Unset fields fall back to defaults
	if cfg.Shell.FallbackBinary != "pwsh" {
		t.Errorf("Shell.FallbackBinary = %q, want default pwsh", cfg.Shell.FallbackBinary)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.Port = 9999
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("round-tripped port = %d, want 9999", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad version", func(c *Config) { c.Version = 2 }, "version"},
		{"empty binary", func(c *Config) { c.Shell.Binary = "" }, "shell.binary"},
		{"zero timeout", func(c *Config) { c.Shell.TimeoutSeconds = 0 }, "shell.timeoutSeconds"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero lookback", func(c *Config) { c.Search.LookbackYears = 0 }, "search.lookbackYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.HistoryPath("/srv/becat"); got != filepath.Join("/srv/becat", ".becat", "history.db") {
		t.Errorf("HistoryPath = %q", got)
	}

	cfg.History.Path = "/var/lib/becat/journal.db"
	if got := cfg.HistoryPath("/srv/becat"); got != "/var/lib/becat/journal.db" {
		t.Errorf("explicit HistoryPath = %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.History.Retain != 10 {
		t.Errorf("default retain = %d, want 10", cfg.History.Retain)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("default backend = %q, want file", cfg.Store.Backend)
	}
}

func TestLoad_PartialOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `store:
  backend: sqlite
  path: /tmp/x.db
history:
  retain: 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.Path != "/tmp/x.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.History.Retain != 3 {
		t.Errorf("retain = %d, want 3", cfg.History.Retain)
	}
	// Untouched sections keep their defaults.
	if cfg.Batch.Workers != 4 || cfg.Output.Format != "text" {
		t.Errorf("defaults lost: batch=%+v output=%+v", cfg.Batch, cfg.Output)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.History.Retain != 10 {
		t.Errorf("retain = %d, want default 10", cfg.History.Retain)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "store: [\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoad_InvalidValuesMentionConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"backend", "store:\n  backend: redis\n", "invalid store backend"},
		{"retain", "history:\n  retain: 0\n", "invalid history retain"},
		{"workers", "batch:\n  workers: -2\n", "invalid batch workers"},
		{"format", "output:\n  format: html\n", "invalid output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "config file") {
				t.Errorf("error should mention 'config file', got: %s", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should contain %q, got: %s", tt.want, err)
			}
		})
	}
}

func TestStorePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Path = "/data/s.json"
	got, err := cfg.StorePath()
	if err != nil || got != "/data/s.json" {
		t.Errorf("StorePath() = (%q, %v)", got, err)
	}

	t.Setenv("HOME", "/home/tester")
	cfg = DefaultConfig()
	cfg.Store.Backend = BackendSQLite
	got, err = cfg.StorePath()
	if err != nil {
		t.Fatalf("StorePath: %v", err)
	}
	if got != filepath.Join("/home/tester", ".tangle", "sessions.db") {
		t.Errorf("StorePath() = %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("expected a missing config file to be non-fatal, got %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected a zero Config, got %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pceval.yaml")
	content := "log_level: debug\nlog_format: json\nmetrics_addr: \":9090\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.MetricsAddr != ":9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("expected default port, got %s", cfg.Server.Port)
	}
	if cfg.Wallet.AppName != "GhostVote" {
		t.Errorf("expected default app name, got %s", cfg.Wallet.AppName)
	}
	if !cfg.Wallet.SSREnabled() {
		t.Error("expected SSR enabled by default")
	}
	if !cfg.Transport.BatchEnabled() {
		t.Error("expected batching enabled by default")
	}
	if cfg.Transport.DefaultTimeoutMs != 10000 {
		t.Errorf("expected 10000ms default timeout, got %d", cfg.Transport.DefaultTimeoutMs)
	}
	if cfg.Probe.Enabled {
		t.Error("probing must be opt-in")
	}
	if cfg.EnvFile != ".env" {
		t.Errorf("unexpected env file %s", cfg.EnvFile)
	}
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`
server:
  port: ":9090"
  allowedOrigins: ["https://ghostvote.example"]
logging:
  level: debug
  format: console
wallet:
  appName: Other
  ssr: false
transport:
  defaultTimeoutMs: 2500
  defaultBatch: false
probe:
  enabled: true
  maxRetries: 3
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Server.Port != ":9090" || cfg.Server.AllowedOrigins[0] != "https://ghostvote.example" {
		t.Errorf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Wallet.AppName != "Other" || cfg.Wallet.SSREnabled() {
		t.Errorf("wallet overrides not applied: %+v", cfg.Wallet)
	}
	if cfg.Transport.DefaultTimeoutMs != 2500 || cfg.Transport.BatchEnabled() {
		t.Errorf("transport overrides not applied: %+v", cfg.Transport)
	}
	if !cfg.Probe.Enabled || cfg.Probe.MaxRetries != 3 || cfg.Probe.IntervalSeconds != 30 {
		t.Errorf("probe overrides not applied: %+v", cfg.Probe)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":        "server: [",
		"bad level":       "logging:\n  level: verbose\n",
		"bad format":      "logging:\n  format: xml\n",
		"negative":        "probe:\n  maxRetries: -1\n",
		"negative server": "server:\n  readTimeout: -5\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("expected defaults, got %+v", cfg.Server)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("wallet:\n  appName: FromFile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Wallet.AppName != "FromFile" {
		t.Errorf("expected FromFile, got %s", cfg.Wallet.AppName)
	}
}

package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 5000 || cfg.Generate.PreviewSize != 800 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citygen.toml")
	data := `
[server]
port = 9090
read_timeout = "3s"

[generate]
rate_limit = 0.5

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 || cfg.Server.Host != "localhost" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Generate.RateLimit != 0.5 || cfg.Generate.Burst != 4 {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.Log.SlogLevel())
	}
	if cfg.Server.Addr() != "localhost:9090" {
		t.Errorf("addr = %s", cfg.Server.Addr())
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestSlogLevelFallback(t *testing.T) {
	if lvl := (LogConfig{Level: "loud"}).SlogLevel(); lvl != slog.LevelInfo {
		t.Errorf("got %v, want info", lvl)
	}
	if lvl := (LogConfig{Level: "WARN"}).SlogLevel(); lvl != slog.LevelWarn {
		t.Errorf("got %v, want warn", lvl)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "info", Format: "json"}.NewLogger(&buf)
	log.Info("generated", "zones", 12)
	log.Debug("hidden")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not a single JSON record: %q", buf.String())
	}
	if rec["msg"] != "generated" || rec["zones"] != float64(12) {
		t.Errorf("record = %v", rec)
	}
}

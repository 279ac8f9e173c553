package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the runtime configuration for the citygen front ends.
// Generation parameters live in spec.Config, not here.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Generate GenerateConfig `toml:"generate"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	Host           string        `toml:"host"`
	Port           int           `toml:"port"`
	ReadTimeout    time.Duration `toml:"read_timeout"`
	WriteTimeout   time.Duration `toml:"write_timeout"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	LogRequests    bool          `toml:"log_requests"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type GenerateConfig struct {
	RateLimit   float64 `toml:"rate_limit"` // generations per second
	Burst       int     `toml:"burst"`
	PreviewSize int     `toml:"preview_size"`
	MaxAreaM2   float64 `toml:"max_area_m2"` // 0 = unlimited
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           5000,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
			RequestTimeout: 60 * time.Second,
			LogRequests:    true,
		},
		Generate: GenerateConfig{
			RateLimit:   2,
			Burst:       4,
			PreviewSize: 800,
			MaxAreaM2:   100_000_000,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return cfg, nil
}

// SlogLevel parses the configured log level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger builds the process logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

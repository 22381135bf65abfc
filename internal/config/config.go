// Package config reads process settings for the tratlus binary.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/alexanderramin/tratlus/internal/timeline"
)

// DefaultDBPath is used when TRATLUS_DB is unset.
const DefaultDBPath = "~/.tratlus/tratlus.db"

// Config holds the settings outside the LLM subsystem.
type Config struct {
	DBPath    string `env:"TRATLUS_DB" envDefault:"~/.tratlus/tratlus.db"`
	LogLevel  string `env:"TRATLUS_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"TRATLUS_LOG_FORMAT" envDefault:"text"`

	PxPerHour   float64 `env:"TRATLUS_PX_PER_HOUR" envDefault:"40"`
	SnapMinutes int     `env:"TRATLUS_SNAP_MINUTES" envDefault:"30"`
	ClearancePx float64 `env:"TRATLUS_CLEARANCE_PX" envDefault:"10"`
}

// LoadDotEnv loads files (default ".env") into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading %s: %w", strings.Join(present, ", "), err)
	}
	return nil
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads Config from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	path, err := homedir.Expand(cfg.DBPath)
	if err != nil {
		return Config{}, fmt.Errorf("expanding TRATLUS_DB: %w", err)
	}
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	cfg.DBPath = path

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("TRATLUS_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if err := cfg.Geometry().Validate(); err != nil {
		return Config{}, fmt.Errorf("timeline geometry: %w", err)
	}
	return cfg, nil
}

// Geometry returns the configured timeline geometry.
func (c Config) Geometry() timeline.Geometry {
	return timeline.Geometry{
		PxPerHour:   c.PxPerHour,
		SnapMinutes: c.SnapMinutes,
		ClearancePx: c.ClearancePx,
	}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("TRATLUS_LOG_LEVEL: %w", err)
	}
	return l, nil
}

// NewLogger builds the root logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.Level()
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/hexmap/pkg/hexmap"
)

// Prefix is prepended to every variable name, e.g. HEXMAP_BATCH_SIZE.
const Prefix = "hexmap"

// Config holds the renderer and data loading settings.
type Config struct {
	BatchSize int           `envconfig:"BATCH_SIZE" default:"50"`
	MaxCells  int           `envconfig:"MAX_CELLS" default:"1000"`
	Padding   float64       `envconfig:"PADDING" default:"0.2"`
	Debounce  time.Duration `envconfig:"DEBOUNCE" default:"200ms"`

	DataPath     string        `envconfig:"DATA_PATH" default:"assets/data.json"`
	DataURL      string        `envconfig:"DATA_URL"`
	FetchRetries int           `envconfig:"FETCH_RETRIES" default:"3"`
	FetchBackoff time.Duration `envconfig:"FETCH_BACKOFF" default:"250ms"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`

	BoundaryCacheBytes int64  `envconfig:"BOUNDARY_CACHE_BYTES" default:"4194304"`
	MetricsAddr        string `envconfig:"METRICS_ADDR"`
}

// Load reads HEXMAP_* variables into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.MaxCells <= 0 {
		return fmt.Errorf("max cells must be positive, got %d", c.MaxCells)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %v", c.Padding)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %v", c.Debounce)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch retries must not be negative, got %d", c.FetchRetries)
	}
	return nil
}

// Options converts the renderer settings. Logger, Metrics and Clock are
// left at their defaults for the caller to set.
func (c *Config) Options() hexmap.Options {
	opts := hexmap.DefaultOptions()
	opts.BatchSize = c.BatchSize
	opts.MaxCells = c.MaxCells
	opts.Padding = c.Padding
	if c.Padding == 0 {
		opts.Padding = hexmap.NoPadding
	}
	opts.Debounce = c.Debounce
	if c.Debounce == 0 {
		opts.Debounce = hexmap.NoDebounce
	}
	opts.BoundaryCacheBytes = c.BoundaryCacheBytes
	return opts
}

// Source returns the dataset source: DataURL when set, else DataPath.
func (c *Config) Source() hexmap.Source {
	if c.DataURL == "" {
		return hexmap.FileSource{Path: c.DataPath}
	}
	src := hexmap.NewHTTPSource(c.DataURL)
	src.MaxRetries = c.FetchRetries
	src.BaseDelay = c.FetchBackoff
	if c.FetchTimeout > 0 {
		src.Client.Timeout = c.FetchTimeout
	}
	return src
}

// LoadEnv overlays variables from .env and .env.dev when present and
// returns the files it loaded. Call it before Load.
func LoadEnv(logger logrus.FieldLogger) []string {
	files := []string{".env", ".env.dev"}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger == nil {
		return loaded
	}
	if len(loaded) == 0 {
		logger.Debug("No local env files loaded; relying on process environment")
	} else {
		logger.Debugf("Loaded env files: %s", strings.Join(loaded, ", "))
	}
	return loaded
}

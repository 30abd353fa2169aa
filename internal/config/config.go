// Package config loads client settings from defaults, an optional YAML
// file and PLATO_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hammamikhairi/plato/internal/logger"
)

// EnvPrefix is the prefix of environment overrides, e.g. PLATO_BASE_URL.
const EnvPrefix = "PLATO_"

// Config holds every tunable of the client.
type Config struct {
	BaseURL             string        `koanf:"base_url"`
	RandomCount         int           `koanf:"random_count"`
	SearchCount         int           `koanf:"search_count"`
	Debounce            time.Duration `koanf:"debounce"`
	HTTPTimeout         time.Duration `koanf:"http_timeout"`
	PreviewLength       int           `koanf:"preview_length"`
	FallbackImage       string        `koanf:"fallback_image"`
	IngredientImageBase string        `koanf:"ingredient_image_base"`
	LogFile             string        `koanf:"log_file"`
	LogLevel            string        `koanf:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:             "http://localhost:8080",
		RandomCount:         10,
		SearchCount:         5,
		Debounce:            300 * time.Millisecond,
		HTTPTimeout:         10 * time.Second,
		PreviewLength:       50,
		FallbackImage:       "default-image.jpg",
		IngredientImageBase: "https://spoonacular.com/cdn/ingredients_100x100/",
		LogFile:             ".plato-logs/plato.log",
		LogLevel:            "normal",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PLATO_*). A missing file is not an
// error. A .env file in the working directory is loaded first so its
// values take part in the overlay.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", c.BaseURL)
	}

	if c.RandomCount <= 0 {
		return fmt.Errorf("random_count must be positive")
	}
	if c.SearchCount <= 0 {
		return fmt.Errorf("search_count must be positive")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.PreviewLength <= 0 {
		return fmt.Errorf("preview_length must be positive")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to normal.
func (c *Config) Level() logger.Level {
	lvl, _ := logger.ParseLevel(c.LogLevel)
	return lvl
}

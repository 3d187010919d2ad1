package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
	"github.com/dmitrymomot/qrgen/pkg/raster"
)

// Config holds every setting of the qrgen front-end.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"` // empty selects the APP_ENV preset

	Engine     string `env:"QRGEN_ENGINE" envDefault:"native"`
	Scale      int    `env:"QRGEN_SCALE" envDefault:"4"`
	Margin     int    `env:"QRGEN_MARGIN" envDefault:"4"`
	Foreground string `env:"QRGEN_FOREGROUND" envDefault:"#000000"`
	Background string `env:"QRGEN_BACKGROUND" envDefault:"#ffffff"`

	DownloadDir string `env:"QRGEN_DOWNLOAD_DIR" envDefault:"."`
}

// Load reads the given .env files (or ./.env when none are given and it
// exists), applies the process environment on top, parses the result and
// validates it.
func Load(paths ...string) (Config, error) {
	file, err := ReadEnv(paths...)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := Parse(&cfg, overlay(file)); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once, joined with ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	switch c.LogFormat {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unsupported format %q", c.LogFormat))
	}
	if _, err := qrcode.EngineByName(c.Engine); err != nil {
		errs = append(errs, fmt.Errorf("QRGEN_ENGINE: %w", err))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("QRGEN_SCALE: must be at least 1, got %d", c.Scale))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("QRGEN_MARGIN: must not be negative, got %d", c.Margin))
	}
	if _, err := raster.ParseHexColor(c.Foreground); err != nil {
		errs = append(errs, fmt.Errorf("QRGEN_FOREGROUND: %w", err))
	}
	if _, err := raster.ParseHexColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("QRGEN_BACKGROUND: %w", err))
	}
	if c.DownloadDir == "" {
		errs = append(errs, errors.New("QRGEN_DOWNLOAD_DIR: must not be empty"))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}

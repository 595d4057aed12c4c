// Package config loads hdesk configuration from defaults, a YAML file,
// HDESK_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Config is the complete hdesk configuration.
type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Logging LoggingConfig `mapstructure:"logging"`
	Export  ExportConfig  `mapstructure:"export"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // Empty discards logs while the TUI runs
}

// ExportConfig controls CSV/PDF exports.
type ExportConfig struct {
	Dir        string `mapstructure:"dir"`
	Theme      string `mapstructure:"theme"`       // grid, striped or plain
	HeaderFill []int  `mapstructure:"header_fill"` // RGB, empty keeps the default
	StripeFill []int  `mapstructure:"stripe_fill"` // RGB, empty keeps the default
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8000/helpdesk",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Export: ExportConfig{
			Dir:   ".",
			Theme: "grid",
		},
	}
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	switch strings.ToLower(c.Export.Theme) {
	case "grid", "striped", "plain":
	default:
		errs = append(errs, fmt.Errorf("export.theme must be grid, striped or plain, got %q", c.Export.Theme))
	}

	for name, rgb := range map[string][]int{"export.header_fill": c.Export.HeaderFill, "export.stripe_fill": c.Export.StripeFill} {
		if err := validateRGB(rgb); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

func validateRGB(rgb []int) error {
	if len(rgb) == 0 {
		return nil
	}
	if len(rgb) != 3 {
		return fmt.Errorf("expected 3 components, got %d", len(rgb))
	}
	for _, c := range rgb {
		if c < 0 || c > 255 {
			return fmt.Errorf("component %d out of range", c)
		}
	}
	return nil
}

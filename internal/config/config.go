// Package config loads the plotter settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/polar_plotter/internal/layout"
	"github.com/user/polar_plotter/internal/style"
)

// DefaultOutput is the name of the saved figure.
const DefaultOutput = "polar_completa.png"

// Save modes.
const (
	SaveAsk = "ask"
	SaveYes = "yes"
	SaveNo  = "no"
)

// Environment overrides.
const (
	EnvCSV      = "POLAR_CSV"
	EnvOutput   = "POLAR_OUTPUT"
	EnvViewer   = "POLAR_VIEWER"
	EnvFontDirs = "POLAR_FONT_DIRS"
	EnvSave     = "POLAR_SAVE"
)

// Config holds every setting of a plotter run.
type Config struct {
	Input     string        `yaml:"input"`
	Output    string        `yaml:"output"`
	PDFOutput string        `yaml:"pdf_output"`
	Viewer    string        `yaml:"viewer"`
	Save      string        `yaml:"save"`
	FontDirs  []string      `yaml:"font_dirs"`
	Style     style.Params  `yaml:"style"`
	Limits    layout.Limits `yaml:"limits"`
}

// Default returns the settings used when no file or environment overrides them.
func Default() Config {
	return Config{
		Output:   DefaultOutput,
		Viewer:   "window",
		Save:     SaveAsk,
		FontDirs: append([]string(nil), style.DefaultFontDirs...),
		Style:    style.DefaultParams(),
		Limits:   layout.DefaultLimits(),
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvCSV); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvViewer); v != "" {
		c.Viewer = v
	}
	if v := os.Getenv(EnvSave); v != "" {
		c.Save = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFontDirs); v != "" {
		c.FontDirs = filepath.SplitList(v)
	}
}

// Validate checks the fields that have a closed set of values.
func (c Config) Validate() error {
	switch c.Save {
	case SaveAsk, SaveYes, SaveNo:
	default:
		return fmt.Errorf("invalid save mode %q (want %s, %s or %s)", c.Save, SaveAsk, SaveYes, SaveNo)
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.Style.FigureDPI <= 0 || c.Style.SaveDPI <= 0 {
		return fmt.Errorf("dpi must be positive (figure %d, save %d)", c.Style.FigureDPI, c.Style.SaveDPI)
	}
	if c.Limits.MaxWidth <= 0 || c.Limits.MaxHeight <= 0 {
		return fmt.Errorf("figure limits must be positive (%gx%g)", c.Limits.MaxWidth, c.Limits.MaxHeight)
	}
	return nil
}

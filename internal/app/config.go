package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/imagineer/internal/imageio"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // "" or "-" reads stdin
	OutputPath string // "" or "-" writes stdout

	// At most one program source is set. With none the image is copied.
	Script     string
	ScriptFile string
	RecipePath string // .hcl file or directory
	RecipeName string

	OutputFormat string
	JPEGQuality  int
	GIFRepeat    *int
	SelectFrame  int // 1-based, 0 keeps every frame

	DumpProgram bool

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	sources := 0
	for _, s := range []string{cfg.Script, cfg.ScriptFile, cfg.RecipePath} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("only one of an inline script, a script file or a recipe path may be given")
	}
	if cfg.RecipeName != "" && cfg.RecipePath == "" {
		return nil, errors.New("a recipe name needs a recipe path")
	}

	if cfg.JPEGQuality == 0 {
		cfg.JPEGQuality = imageio.DefaultJPEGQuality
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("jpeg quality must be between 1 and 100, got %d", cfg.JPEGQuality)
	}
	if cfg.GIFRepeat != nil && *cfg.GIFRepeat < -1 {
		return nil, fmt.Errorf("gif repeat must be -1 (play once), 0 (forever) or a positive count, got %d", *cfg.GIFRepeat)
	}
	if cfg.SelectFrame < 0 {
		return nil, fmt.Errorf("frame numbers start at 1, got %d", cfg.SelectFrame)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count cannot be negative, got %d", cfg.WorkerCount)
	}
	if cfg.OutputFormat != "" {
		if _, err := imageio.FormatFor("", cfg.OutputFormat); err != nil {
			return nil, err
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format '%s': must be 'text' or 'json'", cfg.LogFormat)
	}

	return &cfg, nil
}

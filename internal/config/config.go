// Package config loads gridpdf settings from defaults, an optional TOML or
// YAML file, and GRIDPDF_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/gridpdf/internal/logging"
)

// Environment variables read by ApplyEnv.
const (
	EnvInput      = "GRIDPDF_INPUT"
	EnvOutput     = "GRIDPDF_OUTPUT"
	EnvLogDir     = "GRIDPDF_LOG_DIR"
	EnvLogLevel   = "GRIDPDF_LOG_LEVEL"
	EnvPageSize   = "GRIDPDF_PAGE_SIZE"
	EnvAutoOrient = "GRIDPDF_AUTO_ORIENT"
	EnvDebugBoxes = "GRIDPDF_DEBUG_BOXES"
)

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown config file format")

// Config holds every user-tunable setting.
type Config struct {
	Input  string `toml:"input" yaml:"input"`
	Output string `toml:"output" yaml:"output"`

	LogDir   string `toml:"log_dir" yaml:"log_dir"`
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Page    Page    `toml:"page" yaml:"page"`
	Caption Caption `toml:"caption" yaml:"caption"`
	Images  Images  `toml:"images" yaml:"images"`
	Doc     Doc     `toml:"document" yaml:"document"`
}

// Page describes the page and its grid.
type Page struct {
	Size        string  `toml:"size" yaml:"size"`
	Orientation string  `toml:"orientation" yaml:"orientation"`
	Margin      float64 `toml:"margin" yaml:"margin"`
	InnerMargin float64 `toml:"inner_margin" yaml:"inner_margin"`
	Columns     int     `toml:"columns" yaml:"columns"`
	Rows        int     `toml:"rows" yaml:"rows"`
	// DebugBoxes outlines every cell.
	DebugBoxes  bool    `toml:"debug_boxes" yaml:"debug_boxes"`
}

// Caption describes the file name printed under each image.
type Caption struct {
	Font     string  `toml:"font" yaml:"font"`
	FontSize float64 `toml:"font_size" yaml:"font_size"`
	Offset   float64 `toml:"offset" yaml:"offset"`
}

// Images controls discovery and decoding.
type Images struct {
	Patterns    []string `toml:"patterns" yaml:"patterns"`
	AutoOrient  bool     `toml:"auto_orient" yaml:"auto_orient"`
	JPEGQuality int      `toml:"jpeg_quality" yaml:"jpeg_quality"`
	SVGDPI      float64  `toml:"svg_dpi" yaml:"svg_dpi"`
}

// Doc controls the output document.
type Doc struct {
	OutputSubdir    string `toml:"output_subdir" yaml:"output_subdir"`
	FilePrefix      string `toml:"file_prefix" yaml:"file_prefix"`
	TimestampFormat string `toml:"timestamp_format" yaml:"timestamp_format"`
	Title           string `toml:"title" yaml:"title"`
	Author          string `toml:"author" yaml:"author"`
	Subject         string `toml:"subject" yaml:"subject"`
	Keywords        string `toml:"keywords" yaml:"keywords"`
}

// Default returns the built-in settings: A4 portrait, 40pt margin, 20pt
// gutter, 2x3 grid, 8pt Helvetica captions 15pt below each cell.
func Default() Config {
	return Config{
		Input:    ".",
		LogDir:   logging.DefaultDir,
		LogLevel: "info",
		Page: Page{
			Size:        "a4",
			Orientation: "portrait",
			Margin:      40,
			InnerMargin: 20,
			Columns:     2,
			Rows:        3,
		},
		Caption: Caption{
			Font:     "Helvetica",
			FontSize: 8,
			Offset:   15,
		},
		Images: Images{
			Patterns:    []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp"},
			JPEGQuality: 90,
			SVGDPI:      96,
		},
		Doc: Doc{
			OutputSubdir:    "pdf_output",
			FilePrefix:      "images",
			TimestampFormat: "20060102_150405",
		},
	}
}

// Load returns Default overlaid with the file at path. An empty path returns
// the defaults. The format is chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any GRIDPDF_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvInput); ok && v != "" {
		c.Input = v
	}
	if v, ok := os.LookupEnv(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := os.LookupEnv(EnvLogDir); ok && v != "" {
		c.LogDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPageSize); ok && v != "" {
		c.Page.Size = v
	}
	if v, ok := os.LookupEnv(EnvAutoOrient); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoOrient, err)
		}
		c.Images.AutoOrient = b
	}
	if v, ok := os.LookupEnv(EnvDebugBoxes); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebugBoxes, err)
		}
		c.Page.DebugBoxes = b
	}
	return nil
}

// Validate reports settings that cannot work. Page geometry is checked
// again once the page size is resolved.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input directory must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	switch strings.ToLower(c.Page.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("invalid orientation %q", c.Page.Orientation)
	}
	if c.Page.Columns <= 0 || c.Page.Rows <= 0 {
		return fmt.Errorf("invalid grid %dx%d", c.Page.Columns, c.Page.Rows)
	}
	if c.Page.Margin < 0 || c.Page.InnerMargin < 0 {
		return errors.New("margins must not be negative")
	}
	if c.Caption.FontSize <= 0 {
		return fmt.Errorf("invalid caption font size %v", c.Caption.FontSize)
	}
	if len(c.Images.Patterns) == 0 {
		return errors.New("at least one image pattern is required")
	}
	for _, p := range c.Images.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}
	if c.Doc.FilePrefix == "" {
		return errors.New("file prefix must not be empty")
	}
	return nil
}

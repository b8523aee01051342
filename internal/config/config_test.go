package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "gridpdf.toml", `
input = "/photos"
log_level = "debug"

[page]
size = "letter"
orientation = "landscape"
margin = 36

[caption]
font_size = 10

[images]
patterns = ["*.png", "*.svg"]
auto_orient = true

[document]
title = "Holiday"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Input != "/photos" || cfg.LogLevel != "debug" {
		t.Errorf("top-level fields = %q, %q", cfg.Input, cfg.LogLevel)
	}
	if cfg.Page.Size != "letter" || cfg.Page.Orientation != "landscape" || cfg.Page.Margin != 36 {
		t.Errorf("Page = %+v", cfg.Page)
	}
	// Unset keys keep their defaults.
	if cfg.Page.InnerMargin != 20 || cfg.Page.Columns != 2 || cfg.Caption.Offset != 15 {
		t.Errorf("defaults lost: Page = %+v, Caption = %+v", cfg.Page, cfg.Caption)
	}
	if !reflect.DeepEqual(cfg.Images.Patterns, []string{"*.png", "*.svg"}) || !cfg.Images.AutoOrient {
		t.Errorf("Images = %+v", cfg.Images)
	}
	if cfg.Doc.Title != "Holiday" || cfg.Doc.FilePrefix != "images" {
		t.Errorf("Doc = %+v", cfg.Doc)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "gridpdf.yaml", `
output: /tmp/out
page:
  columns: 3
  rows: 4
document:
  file_prefix: contact_sheet
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "/tmp/out" || cfg.Page.Columns != 3 || cfg.Page.Rows != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Doc.FilePrefix != "contact_sheet" || cfg.Doc.OutputSubdir != "pdf_output" {
		t.Errorf("Doc = %+v", cfg.Doc)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
	if _, err := Load(writeConfig(t, "bad.toml", "input = [")); err == nil {
		t.Error("Load() of malformed TOML should fail")
	}
	if _, err := Load(writeConfig(t, "conf.ini", "x=1")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load() of .ini error = %v, want ErrUnknownFormat", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvInput, "/in")
	t.Setenv(EnvOutput, "/out")
	t.Setenv(EnvLogDir, "/var/log/gridpdf")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvPageSize, "a5")
	t.Setenv(EnvAutoOrient, "true")
	t.Setenv(EnvDebugBoxes, "1")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Input != "/in" || cfg.Output != "/out" || cfg.LogDir != "/var/log/gridpdf" ||
		cfg.LogLevel != "warn" || cfg.Page.Size != "a5" || !cfg.Images.AutoOrient || !cfg.Page.DebugBoxes {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv(EnvAutoOrient, "sometimes")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("ApplyEnv() should reject a non-boolean auto-orient value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.Input = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
		{"bad orientation", func(c *Config) { c.Page.Orientation = "diagonal" }},
		{"no rows", func(c *Config) { c.Page.Rows = 0 }},
		{"negative margin", func(c *Config) { c.Page.InnerMargin = -2 }},
		{"zero font", func(c *Config) { c.Caption.FontSize = 0 }},
		{"no patterns", func(c *Config) { c.Images.Patterns = nil }},
		{"bad pattern", func(c *Config) { c.Images.Patterns = []string{"[x"} }},
		{"no prefix", func(c *Config) { c.Doc.FilePrefix = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

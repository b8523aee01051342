package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
}

func TestOpenWritesConsoleAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	s, err := Open(Options{Dir: dir, Level: log.InfoLevel, Console: &console, Now: fixedNow})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := filepath.Join(dir, "image_to_pdf_20261019_150405.log")
	if s.Path != want {
		t.Errorf("Path = %q, want %q", s.Path, want)
	}
	if len(s.RunID) != 8 {
		t.Errorf("RunID = %q, want 8 characters", s.RunID)
	}

	s.Logger.Warn("image missing", "path", "a.png")
	s.Logger.Debug("hidden")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	for name, out := range map[string]string{"file": string(data), "console": console.String()} {
		if !strings.Contains(out, "image missing") {
			t.Errorf("%s output missing warning: %q", name, out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("%s output contains debug record at info level", name)
		}
		if !strings.Contains(out, s.RunID) {
			t.Errorf("%s output missing run id", name)
		}
	}
}

func TestOpenFailsOnBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(Options{Dir: file, Console: &bytes.Buffer{}}); err == nil {
		t.Error("Open() should fail when the log directory is a file")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARNING", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"critical", log.FatalLevel, false},
		{"fatal", log.FatalLevel, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFatalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	Fatal(newLogger(&buf, log.InfoLevel), "batch failed", "err", "boom")
	if !strings.Contains(buf.String(), "batch failed") {
		t.Errorf("Fatal() output = %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)

	if d := p.Done("batch complete"); d <= 0 {
		t.Errorf("Done() = %v, want positive duration", d)
	}
	if !strings.Contains(buf.String(), "batch complete") {
		t.Errorf("Done() output = %q", buf.String())
	}
}

package res

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func solid(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h)); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, buf.Bytes())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "c.gif", "notes.txt", "d.bmp"} {
		writeFile(t, filepath.Join(dir, name), []byte("x"))
	}
	// Directories matching a pattern and files in subdirectories are ignored.
	if err := os.MkdirAll(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub", "e.png"), []byte("x"))

	entries, err := Discover(dir, nil, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{"a.jpg", "b.png", "c.gif", "d.bmp"}
	if len(entries) != len(want) {
		t.Fatalf("Discover() returned %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, e := range entries {
		if e.Caption != want[i] {
			t.Errorf("entries[%d].Caption = %q, want %q", i, e.Caption, want[i])
		}
		if e.Path != filepath.Join(dir, want[i]) {
			t.Errorf("entries[%d].Path = %q", i, e.Path)
		}
	}
}

func TestDiscoverPatternsAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.png"), []byte("x"))
	writeFile(t, filepath.Join(dir, "two.PNG"), []byte("x"))

	entries, err := Discover(dir, []string{"*.png", "one.*"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Caption != "one.png" {
		t.Errorf("Discover() = %+v, want only one.png", entries)
	}

	if _, err := Discover(dir, []string{"[bad"}, nil); err == nil {
		t.Error("Discover() with malformed pattern should fail")
	}
}

func TestDiscoverNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.png")
	writeFile(t, file, []byte("x"))

	for _, path := range []string{file, filepath.Join(dir, "missing")} {
		if _, err := Discover(path, nil, nil); !errors.Is(err, ErrNotDirectory) {
			t.Errorf("Discover(%q) error = %v, want ErrNotDirectory", path, err)
		}
	}
}

func TestLoadImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, 40, 10)

	img, err := NewLoader().LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Width != 40 || img.Height != 10 {
		t.Errorf("size = %dx%d, want 40x10", img.Width, img.Height)
	}
	if img.Type != TypePNG || img.MimeType != "image/png" {
		t.Errorf("Type = %q, MimeType = %q", img.Type, img.MimeType)
	}
	if img.Caption != "wide.png" {
		t.Errorf("Caption = %q", img.Caption)
	}
	if _, err := png.Decode(bytes.NewReader(img.Data)); err != nil {
		t.Errorf("normalized data is not a PNG: %v", err)
	}
}

func TestLoadImageJPEGPassthrough(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(16, 24), nil); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tall.jpg")
	writeFile(t, path, buf.Bytes())

	img, err := NewLoader().LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Type != TypeJPG || !bytes.Equal(img.Data, buf.Bytes()) {
		t.Error("JPEG should be embedded unchanged")
	}

	l := NewLoader()
	l.AutoOrient = true
	img, err = l.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() with AutoOrient error = %v", err)
	}
	if img.Type != TypeJPG || img.Width != 16 || img.Height != 24 {
		t.Errorf("auto-oriented JPEG = %s %dx%d", img.Type, img.Width, img.Height)
	}
}

func TestLoadImageBMPTranscoded(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, solid(8, 8)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "old.bmp")
	writeFile(t, path, buf.Bytes())

	img, err := NewLoader().LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Type != TypePNG || img.MimeType != "image/bmp" {
		t.Errorf("Type = %q, MimeType = %q", img.Type, img.MimeType)
	}
}

func TestLoadImageSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="30" height="60" viewBox="0 0 30 60">
<rect x="0" y="0" width="30" height="60" fill="#336699"/>
</svg>`
	path := filepath.Join(t.TempDir(), "logo.svg")
	writeFile(t, path, []byte(svg))

	l := NewLoader()
	l.SVGDPI = 192
	img, err := l.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Width != 60 || img.Height != 120 {
		t.Errorf("size = %dx%d, want 60x120", img.Width, img.Height)
	}
	if img.Type != TypePNG {
		t.Errorf("Type = %q, want PNG", img.Type)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()

	var full bytes.Buffer
	if err := png.Encode(&full, solid(20, 20)); err != nil {
		t.Fatal(err)
	}
	truncated := filepath.Join(dir, "truncated.png")
	writeFile(t, truncated, full.Bytes()[:full.Len()/2])

	garbage := filepath.Join(dir, "garbage.jpg")
	writeFile(t, garbage, []byte("definitely not an image"))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.png"), ErrNotFound},
		{"garbage", garbage, ErrUnsupported},
		{"truncated", truncated, ErrDecode},
		{"directory", dir, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadImage(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadImage() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDetermineMimeType(t *testing.T) {
	tests := map[string]string{
		"a.JPG":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.png":  "image/png",
		"a.tif":  "image/tiff",
		"a.svg":  "image/svg+xml",
		"a.txt":  "application/octet-stream",
	}
	for path, want := range tests {
		if got := determineMimeType(path); got != want {
			t.Errorf("determineMimeType(%q) = %q, want %q", path, got, want)
		}
	}
}

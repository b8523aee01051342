package res

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// DefaultPatterns are the glob patterns matched when none are configured.
// Matching is case-sensitive on case-sensitive filesystems.
var DefaultPatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp"}

// Entry is one source image and the caption printed beneath it.
type Entry struct {
	Path    string
	Caption string
}

// NewEntry returns an Entry captioned with the base name of path.
func NewEntry(path string) Entry {
	return Entry{Path: path, Caption: filepath.Base(path)}
}

// Discover returns the files directly inside dir that match any of patterns,
// sorted by path. Subdirectories are neither returned nor descended into, and
// a file matched by several patterns is listed once.
func Discover(dir string, patterns []string, logger *log.Logger) ([]Entry, error) {
	if logger == nil {
		logger = log.Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDirectory, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		found := 0
		for _, m := range matches {
			if seen[m] {
				continue
			}
			st, err := os.Stat(m)
			if err != nil || st.IsDir() {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
			found++
		}
		logger.Debug("scanned pattern", "pattern", pattern, "found", found)
	}

	sort.Strings(paths)

	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i] = NewEntry(p)
	}
	return entries, nil
}

// Package screenshot captures the screen and manages the saved
// screenshot files that voice commands reference by index.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kbinani/screenshot"
	"github.com/spf13/afero"
)

// Capturer grabs the current screen contents.
type Capturer interface {
	Capture() (image.Image, error)
}

// DisplayCapturer captures a physical display.
type DisplayCapturer struct {
	display int
}

// NewDisplayCapturer captures the given display index (0 is primary).
func NewDisplayCapturer(display int) *DisplayCapturer {
	return &DisplayCapturer{display: display}
}

// Capture grabs the display's current frame.
func (c *DisplayCapturer) Capture() (image.Image, error) {
	if screenshot.NumActiveDisplays() <= c.display {
		return nil, fmt.Errorf("display %d not available", c.display)
	}
	img, err := screenshot.CaptureDisplay(c.display)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", c.display, err)
	}
	return img, nil
}

// PrimaryBounds returns the pixel bounds of the primary display.
func PrimaryBounds() image.Rectangle {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}
	}
	return screenshot.GetDisplayBounds(0)
}

// DefaultDir is where screenshots are saved and looked up.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "Screenshots")
	}
	return filepath.Join(home, "Pictures", "Screenshots")
}

// Save writes img as a timestamped PNG under dir, creating the
// directory as needed, and returns the file path.
func Save(fs afero.Fs, dir string, img image.Image, now time.Time) (string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshots dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("screenshot_%s.png", now.Format("20060102_150405")))
	f, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode screenshot: %w", err)
	}
	return path, nil
}

// ListRecent returns the saved screenshot paths under dir, most recent
// first. A missing directory yields an empty list, not an error.
func ListRecent(fs afero.Fs, dir string) ([]string, error) {
	matches, err := afero.Glob(fs, filepath.Join(dir, "screenshot_*.png"))
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}

	type entry struct {
		path    string
		modTime time.Time
	}
	entries := make([]entry, 0, len(matches))
	for _, path := range matches {
		info, err := fs.Stat(path)
		if err != nil {
			continue
		}
		entries = append(entries, entry{path: path, modTime: info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

package handlers

import (
	"image"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/command"
)

type fakeCapturer struct{ err error }

func (f *fakeCapturer) Capture() (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func TestScreenshotMatching(t *testing.T) {
	c := NewScreenshot(afero.NewMemMapFs(), &fakeCapturer{})
	assert.True(t, c.Matches("screenshot"))
	assert.True(t, c.Matches("take screenshot"))
	assert.True(t, c.Matches("green shot")) // transcription of "screenshot"
	assert.False(t, c.Matches("screenshot 2"))
}

func TestScreenshotSaves(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := NewScreenshot(fs, &fakeCapturer{})
	c.dir = "/shots"
	c.now = func() time.Time { return time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC) }

	_, err := c.Execute(&command.Context{}, "screenshot")
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/shots/screenshot_20250314_150926.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReferenceScreenshotMatching(t *testing.T) {
	c := NewReferenceScreenshot(afero.NewMemMapFs())
	assert.True(t, c.Matches("reference screenshot"))
	assert.True(t, c.Matches("reference screenshot 2"))
	assert.True(t, c.Matches("screenshot last 3"))
	assert.True(t, c.Matches("screenshot 2"))
	// Bare capture phrases belong to the capture command
	assert.False(t, c.Matches("screenshot"))
	assert.False(t, c.Matches("take screenshot"))
	assert.False(t, c.Matches("click 5"))
}

func TestReferenceScreenshotPaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"screenshot_old.png", "screenshot_mid.png", "screenshot_new.png"} {
		path := "/shots/" + name
		require.NoError(t, afero.WriteFile(fs, path, []byte("png"), 0644))
		require.NoError(t, fs.Chtimes(path, base, base.Add(time.Duration(i)*time.Minute)))
	}

	c := NewReferenceScreenshot(fs)
	c.dir = "/shots"

	// Default is the latest
	result, err := c.Execute(&command.Context{}, "reference screenshot")
	require.NoError(t, err)
	assert.Equal(t, "/shots/screenshot_new.png", result)

	// Explicit index, 1-based from most recent
	result, err = c.Execute(&command.Context{}, "reference screenshot 2")
	require.NoError(t, err)
	assert.Equal(t, "/shots/screenshot_mid.png", result)

	// Multiple: newline-joined, most recent first, clamped to available
	result, err = c.Execute(&command.Context{}, "screenshot last 5")
	require.NoError(t, err)
	assert.Equal(t, "/shots/screenshot_new.png\n/shots/screenshot_mid.png\n/shots/screenshot_old.png", result)

	// Out-of-range index types nothing
	result, err = c.Execute(&command.Context{}, "reference screenshot 9")
	require.NoError(t, err)
	assert.Empty(t, result)
}

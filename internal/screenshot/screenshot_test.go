package screenshot

import (
	"image"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCreatesTimestampedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	path, err := Save(fs, "/shots", img, now)
	require.NoError(t, err)
	assert.Equal(t, "/shots/screenshot_20250314_150926.png", path)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestListRecentSortsByModTime(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"screenshot_a.png", "screenshot_b.png", "screenshot_c.png"} {
		path := "/shots/" + name
		require.NoError(t, afero.WriteFile(fs, path, []byte("png"), 0644))
		require.NoError(t, fs.Chtimes(path, base, base.Add(time.Duration(i)*time.Minute)))
	}
	// Unrelated file is ignored
	require.NoError(t, afero.WriteFile(fs, "/shots/notes.txt", []byte("x"), 0644))

	paths, err := ListRecent(fs, "/shots")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, "/shots/screenshot_c.png", paths[0])
	assert.Equal(t, "/shots/screenshot_a.png", paths[2])
}

func TestListRecentMissingDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	paths, err := ListRecent(fs, "/nowhere")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

package textproc

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/config"
)

func loadConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := "/config.toml"
	if content == "" {
		path = "/missing.toml"
	} else {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	cfg, err := config.Load(fs, path)
	require.NoError(t, err)
	return cfg
}

func TestProcessPunctuation(t *testing.T) {
	p := New(loadConfig(t, ""))

	typed, action := p.Process("hello world period")
	assert.Empty(t, action)
	assert.Equal(t, "hello world.", typed)

	typed, _ = p.Process("one comma two comma three")
	assert.Equal(t, "one, two, three", typed)

	// Case-insensitive
	typed, _ = p.Process("done Period")
	assert.Equal(t, "done.", typed)
}

func TestProcessPunctuationDisabled(t *testing.T) {
	p := New(loadConfig(t, "[text_processing]\npunctuation_commands = false\n"))

	typed, _ := p.Process("hello period")
	assert.Equal(t, "hello period", typed)
}

func TestProcessCustomVocabulary(t *testing.T) {
	content := `
[text_processing.custom_vocabulary]
"get hub" = "GitHub"
"pull request" = "PR"
`
	p := New(loadConfig(t, content))

	typed, _ := p.Process("open get hub and check the pull request")
	assert.Equal(t, "open GitHub and check the PR", typed)

	// Word boundaries hold: no substitution inside words
	typed, _ = p.Process("pulled requests")
	assert.Equal(t, "pulled requests", typed)
}

func TestProcessCommandWords(t *testing.T) {
	p := New(loadConfig(t, ""))

	typed, action := p.Process("scratch that")
	assert.Empty(t, typed)
	assert.Equal(t, "undo_last", action)

	// Command words match only as the whole utterance
	typed, action = p.Process("please scratch that now")
	assert.Empty(t, action)
	assert.NotEmpty(t, typed)
}

func TestProcessEmpty(t *testing.T) {
	p := New(loadConfig(t, ""))

	typed, action := p.Process("")
	assert.Empty(t, typed)
	assert.Empty(t, action)
}

func TestLastTextTracking(t *testing.T) {
	p := New(loadConfig(t, ""))
	assert.Zero(t, p.LastTextLength())

	p.Process("hello world")
	assert.Equal(t, "hello world", p.LastText())
	assert.Equal(t, len("hello world"), p.LastTextLength())

	// Command words do not overwrite the last typed text
	p.Process("scratch that")
	assert.Equal(t, "hello world", p.LastText())
}

func TestProcessSpacingCleanup(t *testing.T) {
	p := New(loadConfig(t, ""))

	typed, _ := p.Process("hello   world period new line next")
	assert.Equal(t, "hello world.\nnext", typed)
}

package handlers

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/parser"
)

// TestBuiltinDispatch routes ambiguous utterances through the full
// built-in command set and checks the intended command wins.
func TestBuiltinDispatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := config.Load(fs, "/missing.toml")
	require.NoError(t, err)

	reg := command.NewRegistry(nil)
	RegisterBuiltins(reg, parser.New(), cfg, fs, &fakeCapturer{})

	tests := map[string]string{
		"click":                "click",
		"right click":          "right_click",
		"double click":         "double_click",
		"click 5":              "click_number",
		"5":                    "move_to_number",
		"5 to 9":               "drag_between_numbers",
		"refine 5":             "refine_grid",
		"scroll down":          "scroll",
		"move up":              "mouse_move",
		"move left":            "move_window",
		"grid":                 "show_grid",
		"hide":                 "hide_overlay",
		"close":                "hide_overlay",
		"close window":         "close_window",
		"help":                 "show_help",
		"delete":               "backspace",
		"delete word":          "delete_word",
		"delete line":          "delete_line",
		"type comma":           "type_symbol",
		"type hello there":     "type_text",
		"page up":              "page_navigation",
		"up":                   "arrow_key",
		"copy":                 "clipboard",
		"select all":           "select_all",
		"screenshot":           "screenshot",
		"reference screenshot": "reference_screenshot",
		"switch window":        "switch_window",
	}
	for spoken, want := range tests {
		cmd := reg.FindMatching(spoken, true)
		require.NotNil(t, cmd, "no command matched %q", spoken)
		assert.Equal(t, want, command.Name(cmd), "spoken %q", spoken)
	}

	// Unmatched utterances stay unmatched
	assert.Nil(t, reg.FindMatching("completely unrelated words", true))
}

func TestBuiltinDispatchIncludesCustomCommands(t *testing.T) {
	cfg := customConfig(t, `
[custom_commands]
enabled = true

[[custom_commands.commands]]
trigger = "grid"
[custom_commands.commands.action]
type = "type_text"
text = "custom wins"
`)

	fs := afero.NewMemMapFs()
	reg := command.NewRegistry(nil)
	RegisterBuiltins(reg, parser.New(), cfg, fs, &fakeCapturer{})

	// Custom commands outrank the built-in overlay command
	assert.Equal(t, "custom:grid", command.Name(reg.FindMatching("grid", true)))
}

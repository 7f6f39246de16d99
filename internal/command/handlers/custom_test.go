package handlers

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/automation"
	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/config"
)

func customConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/config.toml", []byte(content), 0644))
	cfg, err := config.Load(fs, "/config.toml")
	require.NoError(t, err)
	return cfg
}

func TestLoadCustomCommands(t *testing.T) {
	cfg := customConfig(t, `
[custom_commands]
enabled = true

[[custom_commands.commands]]
trigger = "admin user"
[custom_commands.commands.action]
type = "type_text"
text = "admin@example.com"

[[custom_commands.commands]]
trigger = "open terminal"
[custom_commands.commands.action]
type = "execute_file"
path = "/usr/bin/xterm"

[[custom_commands.commands]]
trigger = "broken"
[custom_commands.commands.action]
type = "no_such_action"
`)

	commands := LoadCustomCommands(cfg)
	require.Len(t, commands, 2)
	assert.Equal(t, "custom:admin user", commands[0].Name())
	assert.True(t, commands[0].Matches("Admin user!"))
	assert.Equal(t, command.PriorityHigh, commands[0].Priority())
}

func TestLoadCustomCommandsDisabled(t *testing.T) {
	cfg := customConfig(t, `
[custom_commands]
enabled = false

[[custom_commands.commands]]
trigger = "admin user"
[custom_commands.commands.action]
type = "type_text"
text = "admin"
`)
	assert.Empty(t, LoadCustomCommands(cfg))
}

func TestCustomTypeText(t *testing.T) {
	cmd, err := NewCustom("admin user", ActionTypeText, map[string]any{"text": "admin@example.com"})
	require.NoError(t, err)

	kb := new(automation.MockKeyboard)
	kb.On("Type", "admin@example.com").Return(nil)
	_, err = cmd.Execute(&command.Context{Keyboard: kb}, "admin user")
	require.NoError(t, err)
	kb.AssertExpectations(t)
	assert.Equal(t, "Type: admin@example.com", cmd.Description())
}

func TestCustomCopyToClipboard(t *testing.T) {
	cmd, err := NewCustom("my email", ActionCopyToClipboard, map[string]any{"text": "me@example.com"})
	require.NoError(t, err)

	cb := new(automation.MockClipboard)
	cb.On("Copy", "me@example.com").Return(nil)
	_, err = cmd.Execute(&command.Context{Clipboard: cb}, "my email")
	require.NoError(t, err)
	cb.AssertExpectations(t)
}

func TestCustomExecuteFile(t *testing.T) {
	cmd, err := NewCustom("open terminal", ActionExecuteFile, map[string]any{"path": "/usr/bin/xterm"})
	require.NoError(t, err)

	launcher := new(automation.MockLauncher)
	launcher.On("Open", "/usr/bin/xterm").Return(nil)
	_, err = cmd.Execute(&command.Context{Launcher: launcher}, "open terminal")
	require.NoError(t, err)
	launcher.AssertExpectations(t)
}

func TestCustomKeyCombination(t *testing.T) {
	cmd, err := NewCustom("lock screen", ActionKeyCombination, map[string]any{"keys": []any{"super", "l"}})
	require.NoError(t, err)

	kb := new(automation.MockKeyboard)
	kb.On("Combo", []string{"super", "l"}).Return(nil)
	_, err = cmd.Execute(&command.Context{Keyboard: kb}, "lock screen")
	require.NoError(t, err)
	kb.AssertExpectations(t)
	assert.Equal(t, "Press: super+l", cmd.Description())
}

func TestCustomInvalidDefinitions(t *testing.T) {
	_, err := NewCustom("", ActionTypeText, map[string]any{"text": "x"})
	assert.Error(t, err)

	_, err = NewCustom("x", ActionTypeText, map[string]any{})
	assert.Error(t, err)

	_, err = NewCustom("x", ActionExecuteFile, map[string]any{})
	assert.Error(t, err)

	_, err = NewCustom("x", ActionKeyCombination, map[string]any{"keys": []any{}})
	assert.Error(t, err)

	_, err = NewCustom("x", "bogus", map[string]any{})
	assert.Error(t, err)
}

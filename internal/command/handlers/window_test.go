package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/automation"
	"github.com/voxctl/voxctl/internal/command"
)

func TestMoveWindowSnaps(t *testing.T) {
	c := NewMoveWindow()
	assert.True(t, c.Matches("move left"))
	assert.True(t, c.Matches("snap right"))
	assert.True(t, c.Matches("move window left"))
	assert.False(t, c.Matches("move up"))

	kb := new(automation.MockKeyboard)
	kb.On("Combo", []string{"super", "left"}).Return(nil)
	kb.On("Press", "escape").Return(nil)
	_, err := c.Execute(keyboardCtx(kb), "snap left")
	require.NoError(t, err)
	kb.AssertExpectations(t)
}

func TestMinimizeMaximize(t *testing.T) {
	kb := new(automation.MockKeyboard)
	kb.On("Combo", []string{"super", "down"}).Return(nil)
	_, err := NewMinimize().Execute(keyboardCtx(kb), "minimize")
	require.NoError(t, err)

	kb = new(automation.MockKeyboard)
	kb.On("Combo", []string{"super", "up"}).Return(nil)
	_, err = NewMaximize().Execute(keyboardCtx(kb), "maximise")
	require.NoError(t, err)

	assert.True(t, NewMinimize().Matches("minimise"))
	assert.True(t, NewMaximize().Matches("maximize"))
}

func TestCloseWindowNeedsFullPhrase(t *testing.T) {
	c := NewCloseWindow()
	assert.True(t, c.Matches("close window"))
	// Bare "close" hides overlays instead
	assert.False(t, c.Matches("close"))

	kb := new(automation.MockKeyboard)
	kb.On("Combo", []string{"alt", "F4"}).Return(nil)
	_, err := c.Execute(keyboardCtx(kb), "close window")
	require.NoError(t, err)
	kb.AssertExpectations(t)
}

func TestSwitchWindow(t *testing.T) {
	c := NewSwitchWindow()
	assert.True(t, c.Matches("switch"))
	assert.True(t, c.Matches("switch window"))

	kb := new(automation.MockKeyboard)
	kb.On("Combo", []string{"alt", "tab"}).Return(nil)
	_, err := c.Execute(keyboardCtx(kb), "switch")
	require.NoError(t, err)

	kb = new(automation.MockKeyboard)
	kb.On("Combo", []string{"alt", "shift", "tab"}).Return(nil)
	_, err = c.Execute(keyboardCtx(kb), "switch window previous")
	require.NoError(t, err)
	kb.AssertExpectations(t)
}

func TestOverlayCommands(t *testing.T) {
	overlays := &fakeOverlays{}
	ctx := &command.Context{Overlays: overlays}

	grid := NewShowGrid(nil)
	assert.True(t, grid.Matches("grid"))
	assert.False(t, grid.Matches("grids"))
	_, err := grid.Execute(ctx, "grid")
	require.NoError(t, err)
	assert.Equal(t, 9, overlays.shownSize)

	hide := NewHideOverlay()
	assert.True(t, hide.Matches("hide"))
	assert.True(t, hide.Matches("height")) // common misrecognition
	assert.True(t, hide.Matches("close"))
	_, err = hide.Execute(ctx, "hide")
	require.NoError(t, err)
	assert.True(t, overlays.hidden)

	help := NewShowHelp(func() string { return "the commands" })
	assert.True(t, help.Matches("help"))
	assert.True(t, help.Matches("commands"))
	_, err = help.Execute(ctx, "help")
	require.NoError(t, err)
	assert.Equal(t, "the commands", overlays.helpText)
}

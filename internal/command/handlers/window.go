package handlers

import (
	"strings"
	"time"

	"github.com/voxctl/voxctl/internal/command"
)

// MoveWindow snaps the focused window to the left or right half of the
// screen with Super+Arrow.
type MoveWindow struct{ base }

func NewMoveWindow() *MoveWindow {
	return &MoveWindow{base{
		name:        "move_window",
		priority:    command.PriorityMedium,
		description: "Snap window to left or right half of screen (Super+Left/Right)",
		examples:    []string{"move left", "move right", "snap left", "snap right"},
	}}
}

func (c *MoveWindow) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	for _, phrase := range []string{
		"move window left", "move left", "snap left",
		"move window right", "move right", "snap right",
	} {
		if strings.Contains(clean, phrase) {
			return true
		}
	}
	return false
}

func (c *MoveWindow) Execute(ctx *command.Context, text string) (string, error) {
	direction := "right"
	if strings.Contains(command.StripPunctuation(text), "left") {
		direction = "left"
	}

	if err := ctx.Keyboard.Combo("super", direction); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	// Dismiss a snap-assist prompt if the desktop shows one.
	time.Sleep(100 * time.Millisecond)
	if err := ctx.Keyboard.Press("escape"); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// Minimize minimizes the focused window.
type Minimize struct{ base }

func NewMinimize() *Minimize {
	return &Minimize{base{
		name:        "minimize",
		priority:    command.PriorityMedium,
		description: "Minimize current window (Super+Down)",
		examples:    []string{"minimize", "minimise"},
	}}
}

func (c *Minimize) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return strings.Contains(clean, "minimize") || strings.Contains(clean, "minimise")
}

func (c *Minimize) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Combo("super", "down"); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// Maximize maximizes the focused window.
type Maximize struct{ base }

func NewMaximize() *Maximize {
	return &Maximize{base{
		name:        "maximize",
		priority:    command.PriorityMedium,
		description: "Maximize current window (Super+Up)",
		examples:    []string{"maximize", "maximise"},
	}}
}

func (c *Maximize) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return strings.Contains(clean, "maximize") || strings.Contains(clean, "maximise")
}

func (c *Maximize) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Combo("super", "up"); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// CloseWindow closes the focused window with Alt+F4. Matches only the
// two-word phrase; the bare "close" hides overlays instead.
type CloseWindow struct{ base }

func NewCloseWindow() *CloseWindow {
	return &CloseWindow{base{
		name:        "close_window",
		priority:    command.PriorityMedium,
		description: "Close current window (Alt+F4)",
		examples:    []string{"close window"},
	}}
}

func (c *CloseWindow) Matches(text string) bool {
	return strings.Contains(command.StripPunctuation(text), "close window")
}

func (c *CloseWindow) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Combo("alt", "F4"); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// SwitchWindow cycles windows with Alt+Tab; "switch window previous"
// cycles backwards.
type SwitchWindow struct{ base }

func NewSwitchWindow() *SwitchWindow {
	return &SwitchWindow{base{
		name:        "switch_window",
		priority:    command.PriorityMedium,
		description: "Switch between windows (Alt+Tab)",
		examples:    []string{"switch", "switch window", "switch window previous"},
	}}
}

func (c *SwitchWindow) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return clean == "switch" || strings.Contains(clean, "switch window")
}

func (c *SwitchWindow) Execute(ctx *command.Context, text string) (string, error) {
	clean := command.StripPunctuation(text)

	var err error
	if strings.Contains(clean, "previous") || strings.Contains(clean, "back") {
		err = ctx.Keyboard.Combo("alt", "shift", "tab")
	} else {
		err = ctx.Keyboard.Combo("alt", "tab")
	}
	if err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

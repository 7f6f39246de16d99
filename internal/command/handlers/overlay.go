package handlers

import (
	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/grid"
)

// ShowGrid displays the numbered grid overlay.
type ShowGrid struct {
	base
	size int
}

func NewShowGrid(cfg *config.Config) *ShowGrid {
	size := grid.DefaultSize
	if cfg != nil {
		size = cfg.GetInt(grid.DefaultSize, "grid", "default_size")
	}
	return &ShowGrid{
		base: base{
			name:        "show_grid",
			priority:    command.PriorityMedium,
			description: "Show numbered grid overlay",
			examples:    []string{"grid"},
		},
		size: size,
	}
}

func (c *ShowGrid) Matches(text string) bool {
	return command.StripPunctuation(text) == "grid"
}

func (c *ShowGrid) Execute(ctx *command.Context, text string) (string, error) {
	if ctx.Overlays == nil {
		return "", nil
	}
	ctx.Overlays.ShowGrid(c.size)
	return "", nil
}

// HideOverlay hides whichever overlay is visible. "height" is a common
// misrecognition of "hide".
type HideOverlay struct{ base }

func NewHideOverlay() *HideOverlay {
	return &HideOverlay{base{
		name:        "hide_overlay",
		priority:    command.PriorityMedium,
		description: "Hide visible overlay (grid, help)",
		examples:    []string{"hide", "close"},
	}}
}

func (c *HideOverlay) Matches(text string) bool {
	switch command.StripPunctuation(text) {
	case "hide", "height", "close":
		return true
	}
	return false
}

func (c *HideOverlay) Execute(ctx *command.Context, text string) (string, error) {
	if ctx.Overlays == nil {
		return "", nil
	}
	ctx.Overlays.HideCurrent()
	return "", nil
}

// ShowHelp displays the command reference overlay. The help text is
// produced lazily so it reflects commands registered after this one.
type ShowHelp struct {
	base
	helpText func() string
}

func NewShowHelp(helpText func() string) *ShowHelp {
	return &ShowHelp{
		base: base{
			name:        "show_help",
			priority:    command.PriorityMedium,
			description: "Show help overlay with available commands",
			examples:    []string{"commands", "help"},
		},
		helpText: helpText,
	}
}

func (c *ShowHelp) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return clean == "commands" || clean == "help"
}

func (c *ShowHelp) Execute(ctx *command.Context, text string) (string, error) {
	if ctx.Overlays == nil {
		return "", nil
	}
	ctx.Overlays.ShowHelp(c.helpText())
	return "", nil
}

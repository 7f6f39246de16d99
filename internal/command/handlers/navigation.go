package handlers

import (
	"strings"

	"github.com/voxctl/voxctl/internal/command"
)

// ArrowKey presses an arrow key for a bare direction word.
type ArrowKey struct{ base }

func NewArrowKey() *ArrowKey {
	return &ArrowKey{base{
		name:        "arrow_key",
		priority:    command.PriorityArrow,
		description: "Press arrow keys for navigation",
		examples:    []string{"left", "right", "up", "down"},
	}}
}

func (c *ArrowKey) Matches(text string) bool {
	switch command.StripPunctuation(text) {
	case "left", "right", "up", "down":
		return true
	}
	return false
}

func (c *ArrowKey) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Press(command.StripPunctuation(text)); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// PageNavigation presses Page Up or Page Down.
type PageNavigation struct{ base }

func NewPageNavigation() *PageNavigation {
	return &PageNavigation{base{
		name:        "page_navigation",
		priority:    command.PriorityMedium,
		description: "Navigate by page (Page Up / Page Down)",
		examples:    []string{"page up", "page down"},
	}}
}

func (c *PageNavigation) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return strings.Contains(clean, "page up") || strings.Contains(clean, "page down")
}

func (c *PageNavigation) Execute(ctx *command.Context, text string) (string, error) {
	key := "page down"
	if strings.Contains(command.StripPunctuation(text), "up") {
		key = "page up"
	}
	if err := ctx.Keyboard.Press(key); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// HomeEnd jumps to the start or end of the line or document.
type HomeEnd struct{ base }

func NewHomeEnd() *HomeEnd {
	return &HomeEnd{base{
		name:        "home_end",
		priority:    command.PriorityMedium,
		description: "Jump to start/end of document or line",
		examples: []string{
			"go to start", "go to top", "go to end", "go to bottom",
			"line start", "line end",
		},
	}}
}

func (c *HomeEnd) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	for _, phrase := range []string{"go to start", "go to top", "go to beginning", "go to end", "go to bottom"} {
		if strings.Contains(clean, phrase) {
			return true
		}
	}
	return clean == "line start" || clean == "line end"
}

func (c *HomeEnd) Execute(ctx *command.Context, text string) (string, error) {
	clean := command.StripPunctuation(text)

	var err error
	switch {
	case clean == "line start":
		err = ctx.Keyboard.Press("home")
	case clean == "line end":
		err = ctx.Keyboard.Press("end")
	case strings.Contains(clean, "start"), strings.Contains(clean, "top"), strings.Contains(clean, "beginning"):
		err = ctx.Keyboard.Combo("ctrl", "home")
	default:
		err = ctx.Keyboard.Combo("ctrl", "end")
	}
	if err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

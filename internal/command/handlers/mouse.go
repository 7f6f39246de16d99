package handlers

import (
	"strings"
	"time"

	"github.com/voxctl/voxctl/internal/automation"
	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/parser"
)

// Click left-clicks at the current pointer position.
type Click struct{ base }

func NewClick() *Click {
	return &Click{base{
		name:        "click",
		priority:    command.PriorityNormal,
		description: "Left click at current mouse position",
		examples:    []string{"click"},
	}}
}

func (c *Click) Matches(text string) bool {
	return command.StripPunctuation(text) == "click"
}

func (c *Click) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Mouse.Click(automation.ButtonLeft); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// RightClick right-clicks at the current pointer position. Higher
// priority than the generic click so "right click" never falls through.
type RightClick struct{ base }

func NewRightClick() *RightClick {
	return &RightClick{base{
		name:        "right_click",
		priority:    command.PriorityMedium,
		description: "Right click at current mouse position",
		examples:    []string{"right click"},
	}}
}

func (c *RightClick) Matches(text string) bool {
	return command.StripPunctuation(text) == "right click"
}

func (c *RightClick) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Mouse.Click(automation.ButtonRight); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// DoubleClick double-clicks at the current pointer position.
type DoubleClick struct{ base }

func NewDoubleClick() *DoubleClick {
	return &DoubleClick{base{
		name:        "double_click",
		priority:    command.PriorityMedium,
		description: "Double click at current mouse position",
		examples:    []string{"double click"},
	}}
}

func (c *DoubleClick) Matches(text string) bool {
	return command.StripPunctuation(text) == "double click"
}

func (c *DoubleClick) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Mouse.DoubleClick(); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// MiddleClick middle-clicks at the current pointer position.
type MiddleClick struct{ base }

func NewMiddleClick() *MiddleClick {
	return &MiddleClick{base{
		name:        "middle_click",
		priority:    command.PriorityMedium,
		description: "Middle click at current mouse position",
		examples:    []string{"middle click", "wheel click"},
	}}
}

func (c *MiddleClick) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return clean == "middle click" || clean == "wheel click"
}

func (c *MiddleClick) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Mouse.Click(automation.ButtonMiddle); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// scrollBase is the magnitude of a single scroll utterance.
const scrollBase = 3

// scrollMultiplierCap bounds the exponential repeat scaling.
const scrollMultiplierCap = 16

// Scroll scrolls in a spoken direction. Consecutive repeats in the same
// direction scale exponentially (3, 6, 12, ...); changing direction
// resets the scaling.
type Scroll struct {
	base
	lastDirection string
	repeatCount   int
}

func NewScroll() *Scroll {
	return &Scroll{base: base{
		name:        "scroll",
		priority:    command.PriorityNormal,
		description: "Scroll in specified direction (with exponential scaling when repeated)",
		examples:    []string{"scroll up", "scroll down", "scroll left", "scroll right"},
	}}
}

func (c *Scroll) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	if !strings.HasPrefix(clean, "scroll") {
		return false
	}
	for _, dir := range []string{"up", "down", "left", "right"} {
		if strings.Contains(clean, dir) {
			return true
		}
	}
	return false
}

func (c *Scroll) Execute(ctx *command.Context, text string) (string, error) {
	clean := command.StripPunctuation(text)

	var direction automation.ScrollDirection
	switch {
	case strings.Contains(clean, "up"):
		direction = automation.ScrollUp
	case strings.Contains(clean, "down"):
		direction = automation.ScrollDown
	case strings.Contains(clean, "left"):
		direction = automation.ScrollLeft
	default:
		direction = automation.ScrollRight
	}

	if c.lastDirection == direction.String() {
		c.repeatCount++
	} else {
		c.repeatCount = 0
		c.lastDirection = direction.String()
	}
	multiplier := 1 << c.repeatCount
	if multiplier > scrollMultiplierCap {
		multiplier = scrollMultiplierCap
	}

	if err := ctx.Mouse.Scroll(direction, scrollBase*multiplier); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// mouseMoveBase is the pixel step of a single move utterance; repeated
// moves scale exponentially up to mouseMoveCap.
const (
	mouseMoveBase = 50
	mouseMoveCap  = 800
)

// MouseMove moves the pointer up or down. Left/right are window
// snapping commands and handled elsewhere.
type MouseMove struct {
	base
	lastDirection string
	repeatCount   int
}

func NewMouseMove() *MouseMove {
	return &MouseMove{base: base{
		name:        "mouse_move",
		priority:    command.PriorityNormal,
		description: "Move mouse cursor up/down (with exponential scaling when repeated)",
		examples:    []string{"move up", "move down"},
	}}
}

func (c *MouseMove) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	if !strings.HasPrefix(clean, "move") {
		return false
	}
	return strings.Contains(clean, "up") || strings.Contains(clean, "down")
}

func (c *MouseMove) Execute(ctx *command.Context, text string) (string, error) {
	clean := command.StripPunctuation(text)
	direction := "down"
	if strings.Contains(clean, "up") {
		direction = "up"
	}

	if c.lastDirection == direction {
		c.repeatCount++
	} else {
		c.repeatCount = 0
		c.lastDirection = direction
	}
	step := mouseMoveBase << c.repeatCount
	if step > mouseMoveCap {
		step = mouseMoveCap
	}

	pos, err := ctx.Mouse.Position()
	if err != nil {
		return "", command.NewExecutionError(c.name, err)
	}

	newY := pos.Y + step
	if direction == "up" {
		newY = pos.Y - step
		if newY < 0 {
			newY = 0
		}
	} else if ctx.ScreenHeight > 0 && newY > ctx.ScreenHeight-1 {
		newY = ctx.ScreenHeight - 1
	}

	if err := ctx.Mouse.MoveTo(pos.X, newY); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// ClickNumber clicks a numbered overlay element.
type ClickNumber struct {
	base
	parser *parser.Parser
}

func NewClickNumber(p *parser.Parser) *ClickNumber {
	return &ClickNumber{
		base: base{
			name:        "click_number",
			priority:    command.PriorityHigh,
			description: "Click on numbered overlay element",
			examples:    []string{"click 5", "click number 12", "click two"},
		},
		parser: p,
	}
}

func (c *ClickNumber) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return strings.HasPrefix(clean, "click") && c.parser.ContainsNumbers(clean)
}

func (c *ClickNumber) Execute(ctx *command.Context, text string) (string, error) {
	numbers := c.parser.ExtractNumbers(text)
	if len(numbers) == 0 || ctx.Overlays == nil {
		return "", nil
	}

	pos, ok := ctx.Overlays.ElementPosition(numbers[0])
	if !ok {
		return "", nil
	}
	if err := ctx.Mouse.ClickAt(pos.X, pos.Y, automation.ButtonLeft); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// moveToNumberPrefixes are command words that claim number-bearing
// utterances for themselves; a bare number must not shadow them.
var moveToNumberPrefixes = []string{"click", "refine", "type", "switch", "scroll", "move", "page"}

// MoveToNumber moves the pointer to a numbered grid cell without
// clicking, triggered by a bare number while the grid is visible.
type MoveToNumber struct {
	base
	parser *parser.Parser
}

func NewMoveToNumber(p *parser.Parser) *MoveToNumber {
	return &MoveToNumber{
		base: base{
			name:        "move_to_number",
			priority:    command.PriorityNormal,
			description: "Move mouse to numbered grid cell (without clicking)",
			examples:    []string{"5", "twelve", "45"},
		},
		parser: p,
	}
}

func (c *MoveToNumber) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	for _, prefix := range moveToNumberPrefixes {
		if strings.HasPrefix(clean, prefix) {
			return false
		}
	}
	return c.parser.ContainsNumbers(clean)
}

func (c *MoveToNumber) Execute(ctx *command.Context, text string) (string, error) {
	numbers := c.parser.ExtractNumbers(text)
	if len(numbers) == 0 || ctx.Overlays == nil || !ctx.Overlays.Visible() {
		return "", nil
	}

	pos, ok := ctx.Overlays.ElementPosition(numbers[0])
	if !ok {
		return "", nil
	}
	if err := ctx.Mouse.MoveTo(pos.X, pos.Y); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// DragBetweenNumbers drags from one numbered cell to another, spoken as
// "5 to 9" or "20-47".
type DragBetweenNumbers struct {
	base
	parser *parser.Parser
}

func NewDragBetweenNumbers(p *parser.Parser) *DragBetweenNumbers {
	return &DragBetweenNumbers{
		base: base{
			name:        "drag_between_numbers",
			priority:    command.PriorityHigh,
			description: "Click and drag from one grid cell to another",
			examples:    []string{"5 to 9", "twenty to thirty", "45 to 52"},
		},
		parser: p,
	}
}

func (c *DragBetweenNumbers) Matches(text string) bool {
	// Keep the hyphen: "5-9" is a drag, not punctuation.
	clean := strings.ToLower(strings.TrimSpace(text))
	hasSeparator := strings.Contains(clean, " to ") ||
		strings.Contains(clean, " two ") ||
		strings.Contains(clean, "-")
	if !hasSeparator {
		return false
	}
	return len(c.parser.ExtractNumbers(clean)) == 2
}

func (c *DragBetweenNumbers) Execute(ctx *command.Context, text string) (string, error) {
	numbers := c.parser.ExtractNumbers(text)
	if len(numbers) != 2 || ctx.Overlays == nil || !ctx.Overlays.Visible() {
		return "", nil
	}

	start, ok := ctx.Overlays.ElementPosition(numbers[0])
	if !ok {
		return "", nil
	}
	end, ok := ctx.Overlays.ElementPosition(numbers[1])
	if !ok {
		return "", nil
	}

	// Small settle delays so the desktop registers the drag.
	steps := []func() error{
		func() error { return ctx.Mouse.MoveTo(start.X, start.Y) },
		func() error { time.Sleep(100 * time.Millisecond); return ctx.Mouse.Hold(automation.ButtonLeft) },
		func() error { time.Sleep(150 * time.Millisecond); return ctx.Mouse.MoveTo(end.X, end.Y) },
		func() error { time.Sleep(150 * time.Millisecond); return ctx.Mouse.Release(automation.ButtonLeft) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return "", command.NewExecutionError(c.name, err)
		}
	}
	return "", nil
}

// RefineGrid zooms the visible grid into a spoken cell number.
type RefineGrid struct {
	base
	parser *parser.Parser
}

func NewRefineGrid(p *parser.Parser) *RefineGrid {
	return &RefineGrid{
		base: base{
			name:        "refine_grid",
			priority:    command.PriorityHigh,
			description: "Zoom into grid cell with 3x3 subdivision",
			examples:    []string{"refine 5", "refine grid 45", "refine twelve"},
		},
		parser: p,
	}
}

func (c *RefineGrid) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	return strings.HasPrefix(clean, "refine") && c.parser.ContainsNumbers(clean)
}

func (c *RefineGrid) Execute(ctx *command.Context, text string) (string, error) {
	numbers := c.parser.ExtractNumbers(text)
	if len(numbers) == 0 || ctx.Overlays == nil {
		return "", nil
	}
	ctx.Overlays.RefineGrid(numbers[0])
	return "", nil
}

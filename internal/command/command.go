// Package command defines the voice command contract and the priority
// dispatch registry.
//
// A Command is a self-contained matcher plus action. The Registry holds
// every registered command sorted by descending priority and routes each
// utterance to the first command that matches, publishing lifecycle
// events along the way.
package command

import (
	"image"
	"strings"

	"github.com/voxctl/voxctl/internal/automation"
	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/events"
)

// Priority bands for command ordering. Higher priorities are checked first.
const (
	// PriorityCritical is for system commands (help, exit, stop).
	PriorityCritical = 1000
	// PriorityHigh is for specific multi-word commands.
	PriorityHigh = 500
	// PriorityMedium is for common commands with specific triggers.
	PriorityMedium = 200
	// PriorityArrow is for bare direction words, which must lose to
	// medium-priority phrases like "page up" but beat normal commands.
	PriorityArrow = 150
	// PriorityNormal is for basic single-word commands.
	PriorityNormal = 100
	// PriorityLow is for fallback commands.
	PriorityLow = 50
)

// Overlays is the overlay capability consumed by commands. It is the
// narrow surface of the overlay coordinator that command handlers need.
type Overlays interface {
	// ShowGrid displays the numbered grid with the given subdivision count.
	ShowGrid(size int) bool
	// RefineGrid zooms the visible grid into a cell. Reports failure when
	// the grid is hidden or the cell is out of range.
	RefineGrid(cell int) bool
	// HideCurrent hides whichever overlay is visible.
	HideCurrent() bool
	// ShowHelp displays the command help overlay with the given text.
	ShowHelp(text string) bool
	// Visible reports whether any overlay is shown.
	Visible() bool
	// ElementPosition resolves a numbered element to screen coordinates.
	ElementPosition(n int) (image.Point, bool)
}

// Context is the capability bundle passed by reference into every
// Validate and Execute call. Commands never own it.
type Context struct {
	Config    *config.Config
	Keyboard  automation.Keyboard
	Mouse     automation.Mouse
	Clipboard automation.Clipboard
	Launcher  automation.Launcher
	Overlays  Overlays
	Events    *events.Bus

	ScreenWidth  int
	ScreenHeight int

	// Data is free-form scratch space shared across commands in a session.
	Data map[string]any
}

// Publish sends an event when an event bus is attached.
func (c *Context) Publish(t events.Type, data map[string]any) {
	if c.Events != nil {
		c.Events.Publish(events.New(t, data))
	}
}

// Command is the contract every voice command implements.
type Command interface {
	// Matches reports whether this command should handle the text.
	Matches(text string) bool
	// Execute performs the action. The returned string, when non-empty,
	// is literal text for downstream injection.
	Execute(ctx *Context, text string) (string, error)
	// Priority orders commands; higher values are checked first.
	Priority() int
	// Description is a short human-readable summary for help output.
	Description() string
}

// Exampler is implemented by commands that provide usage examples.
type Exampler interface {
	Examples() []string
}

// Validator is implemented by commands with pre-execution checks.
type Validator interface {
	// Validate reports whether the command can run in this context.
	Validate(ctx *Context, text string) bool
}

// Enabler is implemented by commands that can be switched off at runtime.
type Enabler interface {
	Enabled() bool
}

// Name returns the identity used in events and errors for a command:
// its Name() when it implements one, otherwise its description.
func Name(cmd Command) string {
	if n, ok := cmd.(interface{ Name() string }); ok {
		return n.Name()
	}
	return cmd.Description()
}

// Examples returns the usage examples of a command, or nil.
func Examples(cmd Command) []string {
	if e, ok := cmd.(Exampler); ok {
		return e.Examples()
	}
	return nil
}

// Enabled reports whether a command is enabled; commands without an
// Enabled method are always enabled.
func Enabled(cmd Command) bool {
	if e, ok := cmd.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

// punctuationCutset lists punctuation stripped for matching. Hyphen and
// apostrophe survive because they appear inside legitimate triggers.
const punctuationCutset = ".!?,;:\"“”‘’(){}[]<>/@#$%^&*+=~`|\\"

// StripPunctuation lowercases text and removes punctuation that speech
// recognition tends to append, keeping hyphens and apostrophes.
func StripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(punctuationCutset, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(strings.ToLower(b.String()))
}

package handlers

import (
	"strings"

	"github.com/voxctl/voxctl/internal/command"
)

// KeyPress taps a single key when one of its trigger words is spoken.
// The concrete key commands (enter, tab, escape, ...) are instances.
type KeyPress struct {
	base
	triggers []string
	key      string
}

func newKeyPress(name string, triggers []string, key, description string, priority int) *KeyPress {
	return &KeyPress{
		base: base{
			name:        name,
			priority:    priority,
			description: description,
			examples:    triggers,
		},
		triggers: triggers,
		key:      key,
	}
}

func (c *KeyPress) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	for _, t := range c.triggers {
		if clean == t {
			return true
		}
	}
	return false
}

func (c *KeyPress) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Press(c.key); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

func NewEnter() *KeyPress {
	return newKeyPress("enter", []string{"enter"}, "enter", "Press Enter key", command.PriorityNormal)
}

func NewTab() *KeyPress {
	return newKeyPress("tab", []string{"tab"}, "tab", "Press Tab key", command.PriorityNormal)
}

func NewEscape() *KeyPress {
	return newKeyPress("escape", []string{"escape", "cancel"}, "escape", "Press Escape key", command.PriorityNormal)
}

func NewSpace() *KeyPress {
	return newKeyPress("space", []string{"space"}, "space", "Press Space key", command.PriorityNormal)
}

func NewBackspace() *KeyPress {
	return newKeyPress("backspace", []string{"delete", "backspace"}, "backspace",
		"Delete one character (Backspace)", command.PriorityNormal)
}

// DeleteWord deletes the previous word with Ctrl+Backspace. Higher
// priority than the bare "delete".
type DeleteWord struct{ base }

func NewDeleteWord() *DeleteWord {
	return &DeleteWord{base{
		name:        "delete_word",
		priority:    command.PriorityHigh,
		description: "Delete previous word (Ctrl+Backspace)",
		examples:    []string{"delete word"},
	}}
}

func (c *DeleteWord) Matches(text string) bool {
	return command.StripPunctuation(text) == "delete word"
}

func (c *DeleteWord) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Combo("ctrl", "backspace"); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// DeleteLine deletes the current line: Home, Shift+End, Delete.
type DeleteLine struct{ base }

func NewDeleteLine() *DeleteLine {
	return &DeleteLine{base{
		name:        "delete_line",
		priority:    command.PriorityHigh,
		description: "Delete current line",
		examples:    []string{"delete line"},
	}}
}

func (c *DeleteLine) Matches(text string) bool {
	return command.StripPunctuation(text) == "delete line"
}

func (c *DeleteLine) Execute(ctx *command.Context, text string) (string, error) {
	steps := []func() error{
		func() error { return ctx.Keyboard.Press("home") },
		func() error { return ctx.Keyboard.Combo("shift", "end") },
		func() error { return ctx.Keyboard.Press("delete") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return "", command.NewExecutionError(c.name, err)
		}
	}
	return "", nil
}

// ClipboardOps handles copy, cut, and paste via Ctrl shortcuts.
type ClipboardOps struct {
	base
	operations map[string]string
}

func NewClipboardOps() *ClipboardOps {
	return &ClipboardOps{
		base: base{
			name:        "clipboard",
			priority:    command.PriorityMedium,
			description: "Clipboard operations (copy, cut, paste)",
			examples:    []string{"copy", "cut", "paste"},
		},
		operations: map[string]string{
			"copy":  "c",
			"cut":   "x",
			"paste": "v",
		},
	}
}

func (c *ClipboardOps) Matches(text string) bool {
	_, ok := c.operations[command.StripPunctuation(text)]
	return ok
}

func (c *ClipboardOps) Execute(ctx *command.Context, text string) (string, error) {
	key := c.operations[command.StripPunctuation(text)]
	if err := ctx.Keyboard.Combo("ctrl", key); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

// Shortcut presses a modifier chord when a trigger phrase is spoken.
type Shortcut struct {
	base
	triggers []string
	keys     []string
}

func newShortcut(name string, triggers []string, keys []string, description string) *Shortcut {
	return &Shortcut{
		base: base{
			name:        name,
			priority:    command.PriorityMedium,
			description: description,
			examples:    triggers,
		},
		triggers: triggers,
		keys:     keys,
	}
}

func (c *Shortcut) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	for _, t := range c.triggers {
		if clean == t {
			return true
		}
	}
	return false
}

func (c *Shortcut) Execute(ctx *command.Context, text string) (string, error) {
	if err := ctx.Keyboard.Combo(c.keys...); err != nil {
		return "", command.NewExecutionError(c.name, err)
	}
	return "", nil
}

func NewSelectAll() *Shortcut {
	return newShortcut("select_all", []string{"select all"}, []string{"ctrl", "a"}, "Select all text (Ctrl+A)")
}

func NewUndo() *Shortcut {
	return newShortcut("undo", []string{"undo"}, []string{"ctrl", "z"}, "Undo last action (Ctrl+Z)")
}

func NewRedo() *Shortcut {
	return newShortcut("redo", []string{"redo"}, []string{"ctrl", "y"}, "Redo last undone action (Ctrl+Y)")
}

func NewSave() *Shortcut {
	return newShortcut("save", []string{"save"}, []string{"ctrl", "s"}, "Save file (Ctrl+S)")
}

// TypeText types everything after the "type " prefix as literal text.
type TypeText struct{ base }

func NewTypeText() *TypeText {
	return &TypeText{base{
		name:        "type_text",
		priority:    command.PriorityHigh,
		description: "Type text with 'type' prefix stripped",
		examples:    []string{"type hello world", "type investigate why"},
	}}
}

func (c *TypeText) Matches(text string) bool {
	return strings.HasPrefix(command.StripPunctuation(text), "type ")
}

func (c *TypeText) Execute(ctx *command.Context, text string) (string, error) {
	clean := command.StripPunctuation(text)
	if !strings.HasPrefix(clean, "type ") {
		return clean, nil
	}
	return strings.TrimSpace(clean[len("type "):]), nil
}

// symbolNames maps spoken symbol names to the character to type.
var symbolNames = map[string]string{
	"slash":         "/",
	"backslash":     "\\",
	"open":          "(",
	"open paren":    "(",
	"close paren":   ")",
	"curly open":    "{",
	"open curly":    "{",
	"curly close":   "}",
	"close curly":   "}",
	"equal":         "=",
	"equals":        "=",
	"quotation":     "\"",
	"quote":         "\"",
	"tick":          "'",
	"apostrophe":    "'",
	"dollar":        "$",
	"ampersand":     "&",
	"array open":    "[",
	"open bracket":  "[",
	"array close":   "]",
	"close bracket": "]",
	"question":      "?",
	"exclamation":   "!",
	"percent":       "%",
	"star":          "*",
	"asterisk":      "*",
	"plus":          "+",
	"minus":         "-",
	"dash":          "-",
	"dot":           ".",
	"period":        ".",
	"colon":         ":",
	"semicolon":     ";",
	"comma":         ",",
	"hashtag":       "#",
	"hash":          "#",
	"pound":         "#",
	"greater":       ">",
	"greater than":  ">",
	"smaller":       "<",
	"less than":     "<",
	"bar":           "|",
	"pipe":          "|",
	"caret":         "^",
	"tilde":         "~",
}

// TypeSymbol types a single symbol character by its spoken name, with
// or without the "type " prefix.
type TypeSymbol struct{ base }

func NewTypeSymbol() *TypeSymbol {
	return &TypeSymbol{base{
		name:        "type_symbol",
		priority:    command.PriorityHigh + 1,
		description: "Type symbol characters",
		examples:    []string{"slash", "open paren", "equals", "quote", "comma"},
	}}
}

func (c *TypeSymbol) Matches(text string) bool {
	clean := command.StripPunctuation(text)
	if _, ok := symbolNames[clean]; ok {
		return true
	}
	if strings.HasPrefix(clean, "type ") {
		_, ok := symbolNames[strings.TrimSpace(clean[len("type "):])]
		return ok
	}
	return false
}

func (c *TypeSymbol) Execute(ctx *command.Context, text string) (string, error) {
	clean := command.StripPunctuation(text)
	if strings.HasPrefix(clean, "type ") {
		clean = strings.TrimSpace(clean[len("type "):])
	}
	return symbolNames[clean], nil
}

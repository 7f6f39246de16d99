// Package automation abstracts the desktop input primitives that command
// handlers drive: keyboard injection, pointer control, clipboard access,
// and process launching.
//
// The interfaces keep command handlers testable; DefaultClient implements
// all of them on top of xdotool and xclip.
package automation

import "image"

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "left"
	}
}

// ScrollDirection identifies a scroll direction.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

// String returns the direction name.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "up"
	}
}

// Keyboard injects key presses and literal text.
type Keyboard interface {
	// Press taps a single named key, e.g. "enter" or "escape".
	Press(key string) error
	// Combo presses a chord of keys together, e.g. ("ctrl", "c").
	Combo(keys ...string) error
	// Type injects literal text as keystrokes.
	Type(text string) error
}

// Mouse controls the pointer.
type Mouse interface {
	// Click presses and releases a button at the current position.
	Click(button Button) error
	// ClickAt moves to (x, y) and clicks.
	ClickAt(x, y int, button Button) error
	// DoubleClick double-clicks the left button at the current position.
	DoubleClick() error
	// MoveTo warps the pointer to (x, y).
	MoveTo(x, y int) error
	// Position returns the current pointer position.
	Position() (image.Point, error)
	// Scroll scrolls amount notches in the given direction.
	Scroll(direction ScrollDirection, amount int) error
	// Hold presses a button down without releasing, for drags.
	Hold(button Button) error
	// Release releases a held button.
	Release(button Button) error
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// Launcher opens files and starts programs.
type Launcher interface {
	// Open opens a path or URL with the desktop's default handler.
	Open(target string) error
	// Run starts a program detached from the current process.
	Run(name string, args ...string) error
}

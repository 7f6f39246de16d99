package automation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/voxctl/voxctl/internal/colors"
)

const (
	// DefaultTimeout is the default timeout for input injection commands.
	DefaultTimeout = 5 * time.Second

	// X11 wheel buttons: 4/5 vertical, 6/7 horizontal.
	scrollUpButton    = 4
	scrollDownButton  = 5
	scrollLeftButton  = 6
	scrollRightButton = 7
)

// ClientOption is a functional option for configuring a DefaultClient.
type ClientOption func(*DefaultClient)

// WithTimeout sets the timeout for injection command execution.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		c.timeout = timeout
	}
}

// WithDisplay sets the X11 display passed to xdotool.
func WithDisplay(display string) ClientOption {
	return func(c *DefaultClient) {
		c.display = display
	}
}

// DefaultClient implements Keyboard, Mouse, Clipboard and Launcher using
// exec.Command to run xdotool and xclip.
type DefaultClient struct {
	display string
	timeout time.Duration
}

// NewDefaultClient creates a new DefaultClient with the given options.
func NewDefaultClient(opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// runCommand executes an external command with the client timeout.
// It returns stdout, stderr, and any error that occurred.
func (c *DefaultClient) runCommand(name string, args ...string) (string, string, error) {
	start := time.Now()
	colors.Debug(fmt.Sprintf("run: %s %s", name, strings.Join(args, " ")))
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if c.display != "" {
		cmd.Env = append(cmd.Environ(), "DISPLAY="+c.display)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		colors.Debug(fmt.Sprintf("run failed after %.3fs: %s: %v",
			time.Since(start).Seconds(), name, err))
	}
	return stdout.String(), stderr.String(), err
}

func (c *DefaultClient) xdotool(args ...string) error {
	_, stderr, err := c.runCommand("xdotool", args...)
	if err != nil {
		return fmt.Errorf("xdotool %s failed: %w (%s)", args[0], err, strings.TrimSpace(stderr))
	}
	return nil
}

// Press taps a single named key.
func (c *DefaultClient) Press(key string) error {
	return c.xdotool("key", Keysym(key))
}

// Combo presses a chord of keys together.
func (c *DefaultClient) Combo(keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("empty key combo")
	}
	syms := make([]string, len(keys))
	for i, k := range keys {
		syms[i] = Keysym(k)
	}
	return c.xdotool("key", strings.Join(syms, "+"))
}

// Type injects literal text as keystrokes.
func (c *DefaultClient) Type(text string) error {
	if text == "" {
		return nil
	}
	return c.xdotool("type", "--delay", "12", "--", text)
}

// Click presses and releases a button at the current position.
func (c *DefaultClient) Click(button Button) error {
	return c.xdotool("click", strconv.Itoa(int(button)))
}

// ClickAt moves to (x, y) and clicks.
func (c *DefaultClient) ClickAt(x, y int, button Button) error {
	if err := c.MoveTo(x, y); err != nil {
		return err
	}
	return c.Click(button)
}

// DoubleClick double-clicks the left button at the current position.
func (c *DefaultClient) DoubleClick() error {
	return c.xdotool("click", "--repeat", "2", strconv.Itoa(int(ButtonLeft)))
}

// MoveTo warps the pointer to (x, y).
func (c *DefaultClient) MoveTo(x, y int) error {
	return c.xdotool("mousemove", strconv.Itoa(x), strconv.Itoa(y))
}

// Position returns the current pointer position.
func (c *DefaultClient) Position() (image.Point, error) {
	stdout, stderr, err := c.runCommand("xdotool", "getmouselocation", "--shell")
	if err != nil {
		return image.Point{}, fmt.Errorf("getmouselocation failed: %w (%s)", err, strings.TrimSpace(stderr))
	}
	return parseMouseLocation(stdout)
}

// Scroll scrolls amount notches in the given direction.
func (c *DefaultClient) Scroll(direction ScrollDirection, amount int) error {
	if amount < 1 {
		return nil
	}
	button := scrollUpButton
	switch direction {
	case ScrollDown:
		button = scrollDownButton
	case ScrollLeft:
		button = scrollLeftButton
	case ScrollRight:
		button = scrollRightButton
	}
	return c.xdotool("click", "--repeat", strconv.Itoa(amount), strconv.Itoa(button))
}

// Hold presses a button down without releasing.
func (c *DefaultClient) Hold(button Button) error {
	return c.xdotool("mousedown", strconv.Itoa(int(button)))
}

// Release releases a held button.
func (c *DefaultClient) Release(button Button) error {
	return c.xdotool("mouseup", strconv.Itoa(int(button)))
}

// Copy writes text to the system clipboard via xclip.
func (c *DefaultClient) Copy(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "xclip", "-selection", "clipboard")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xclip copy failed: %w", err)
	}
	return nil
}

// Paste reads the system clipboard via xclip.
func (c *DefaultClient) Paste() (string, error) {
	stdout, stderr, err := c.runCommand("xclip", "-selection", "clipboard", "-o")
	if err != nil {
		return "", fmt.Errorf("xclip paste failed: %w (%s)", err, strings.TrimSpace(stderr))
	}
	return stdout, nil
}

// Open opens a path or URL with the desktop's default handler.
func (c *DefaultClient) Open(target string) error {
	cmd := exec.Command("xdg-open", target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %q failed: %w", target, err)
	}
	// Detached; the handler outlives us.
	return cmd.Process.Release()
}

// Run starts a program detached from the current process.
func (c *DefaultClient) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("run %q failed: %w", name, err)
	}
	return cmd.Process.Release()
}

// parseMouseLocation parses `xdotool getmouselocation --shell` output,
// which looks like "X=312\nY=204\nSCREEN=0\nWINDOW=1234".
func parseMouseLocation(output string) (image.Point, error) {
	var pt image.Point
	var haveX, haveY bool
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			pt.X, haveX = n, true
		case "Y":
			pt.Y, haveY = n, true
		}
	}
	if !haveX || !haveY {
		return image.Point{}, fmt.Errorf("unparseable mouse location: %q", output)
	}
	return pt, nil
}

// keysyms maps spoken key names to X11 keysyms. Names not listed pass
// through unchanged so chords like "ctrl+shift+t" still work.
var keysyms = map[string]string{
	"enter":     "Return",
	"return":    "Return",
	"escape":    "Escape",
	"tab":       "Tab",
	"space":     "space",
	"backspace": "BackSpace",
	"delete":    "Delete",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"home":      "Home",
	"end":       "End",
	"page up":   "Page_Up",
	"page down": "Page_Down",
	"ctrl":      "ctrl",
	"control":   "ctrl",
	"alt":       "alt",
	"shift":     "shift",
	"super":     "super",
}

// Keysym resolves a spoken key name to its X11 keysym.
func Keysym(name string) string {
	if sym, ok := keysyms[strings.ToLower(strings.TrimSpace(name))]; ok {
		return sym
	}
	return name
}

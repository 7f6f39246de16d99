package overlay

import (
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/voxctl/voxctl/internal/grid"
)

// Surface is a rendering backend for overlays. Implementations are not
// thread-safe; every call happens on the owning overlay's render loop.
type Surface interface {
	// RenderGrid draws a size×size numbered grid over bounds.
	RenderGrid(bounds grid.Rect, size int, positions map[int]image.Point) error
	// RenderText draws a block of text, e.g. the help panel.
	RenderText(text string) error
	// Clear removes whatever the surface currently shows.
	Clear() error
}

var (
	gridCellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("214")).
			Align(lipgloss.Center).
			Width(6)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// TermSurface renders overlays as styled text to a terminal writer. It
// is the debugging surface used by `voxctl process`; a desktop build
// swaps in a compositor-backed implementation.
type TermSurface struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTermSurface creates a terminal surface writing to out.
func NewTermSurface(out io.Writer) *TermSurface {
	return &TermSurface{out: out}
}

// RenderGrid draws the numbered grid as a bordered table.
func (s *TermSurface) RenderGrid(bounds grid.Rect, size int, positions map[int]image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]string, 0, size)
	for row := 0; row < size; row++ {
		cells := make([]string, 0, size)
		for col := 0; col < size; col++ {
			n := row*size + col + 1
			cells = append(cells, gridCellStyle.Render(fmt.Sprintf("%d", n)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	header := fmt.Sprintf("grid %dx%d over (%.0f,%.0f %0.fx%.0f)",
		size, size, bounds.X, bounds.Y, bounds.W, bounds.H)
	_, err := fmt.Fprintln(s.out, header+"\n"+lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}

// RenderText draws a bordered text panel.
func (s *TermSurface) RenderText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintln(s.out, helpStyle.Render(strings.TrimRight(text, "\n")))
	return err
}

// Clear prints a separator; terminals have no real overlay to remove.
func (s *TermSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintln(s.out, "(overlay hidden)")
	return err
}

// NullSurface discards every render call. Used headless and in tests.
type NullSurface struct{}

func (NullSurface) RenderGrid(grid.Rect, int, map[int]image.Point) error { return nil }
func (NullSurface) RenderText(string) error                              { return nil }
func (NullSurface) Clear() error                                         { return nil }

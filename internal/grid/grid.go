// Package grid implements the screen addressing state machine behind the
// numbered grid overlay.
//
// A grid is either unshown, covering the full screen with size×size
// numbered cells, or refined into a 3×3 subdivision of one cell. Two
// rounds of addressing (a 9×9 grid refined into 3×3) give 27×27 effective
// resolution from two short utterances. The machine is pure geometry and
// has no dependency on any rendering surface.
package grid

import "image"

// RefinedSize is the subdivision used for every refinement step.
const RefinedSize = 3

// DefaultSize is the grid size used when none is requested.
const DefaultSize = 9

// State identifies the current mode of the grid.
type State int

const (
	// Unshown means no grid is active.
	Unshown State = iota
	// Full means the grid covers the whole screen.
	Full
	// Refined means the grid subdivides a previously selected cell.
	Refined
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Full:
		return "full"
	case Refined:
		return "refined"
	default:
		return "unshown"
	}
}

// Rect is a screen-space rectangle with float precision so repeated
// refinements do not accumulate truncation error.
type Rect struct {
	X, Y, W, H float64
}

// Machine is the grid addressing state machine.
type Machine struct {
	screenW float64
	screenH float64

	state       State
	bounds      Rect
	size        int
	refinedCell int
}

// NewMachine creates an unshown grid for a screen of the given dimensions.
func NewMachine(screenWidth, screenHeight int) *Machine {
	return &Machine{
		screenW: float64(screenWidth),
		screenH: float64(screenHeight),
	}
}

// Show transitions to Full from any state, covering the entire screen
// with size×size cells. An invalid size reports failure without changing
// state.
func (m *Machine) Show(size int) bool {
	if size < 1 {
		return false
	}
	m.state = Full
	m.bounds = Rect{X: 0, Y: 0, W: m.screenW, H: m.screenH}
	m.size = size
	m.refinedCell = 0
	return true
}

// Refine zooms into cell under the currently active bounds, whether the
// grid is Full or already Refined. The new grid is always 3×3. An invalid
// cell number is a no-op that reports failure.
func (m *Machine) Refine(cell int) bool {
	if m.state == Unshown {
		return false
	}
	if cell < 1 || cell > m.size*m.size {
		return false
	}
	row := (cell - 1) / m.size
	col := (cell - 1) % m.size
	cellW := m.bounds.W / float64(m.size)
	cellH := m.bounds.H / float64(m.size)

	m.bounds = Rect{
		X: m.bounds.X + float64(col)*cellW,
		Y: m.bounds.Y + float64(row)*cellH,
		W: cellW,
		H: cellH,
	}
	m.size = RefinedSize
	m.refinedCell = cell
	m.state = Refined
	return true
}

// Hide transitions to Unshown from any state, clearing bounds and the
// refined marker.
func (m *Machine) Hide() {
	m.state = Unshown
	m.bounds = Rect{}
	m.size = 0
	m.refinedCell = 0
}

// ElementPosition returns the pixel center of cell n under the current
// state. The second return value is false when no grid is shown or n is
// out of range.
func (m *Machine) ElementPosition(n int) (image.Point, bool) {
	if m.state == Unshown || n < 1 || n > m.size*m.size {
		return image.Point{}, false
	}
	row := (n - 1) / m.size
	col := (n - 1) % m.size
	cellW := m.bounds.W / float64(m.size)
	cellH := m.bounds.H / float64(m.size)
	return image.Point{
		X: int(m.bounds.X + (float64(col)+0.5)*cellW),
		Y: int(m.bounds.Y + (float64(row)+0.5)*cellH),
	}, true
}

// ElementPositions returns the pixel centers of every cell, keyed by cell
// number. Returns nil when no grid is shown.
func (m *Machine) ElementPositions() map[int]image.Point {
	if m.state == Unshown {
		return nil
	}
	positions := make(map[int]image.Point, m.size*m.size)
	for n := 1; n <= m.size*m.size; n++ {
		if pt, ok := m.ElementPosition(n); ok {
			positions[n] = pt
		}
	}
	return positions
}

// CellBounds returns the rectangle of cell n under the current state.
func (m *Machine) CellBounds(n int) (Rect, bool) {
	if m.state == Unshown || n < 1 || n > m.size*m.size {
		return Rect{}, false
	}
	row := (n - 1) / m.size
	col := (n - 1) % m.size
	cellW := m.bounds.W / float64(m.size)
	cellH := m.bounds.H / float64(m.size)
	return Rect{
		X: m.bounds.X + float64(col)*cellW,
		Y: m.bounds.Y + float64(row)*cellH,
		W: cellW,
		H: cellH,
	}, true
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Size returns the current subdivision count, 0 when unshown.
func (m *Machine) Size() int { return m.size }

// Bounds returns the active bounds, zero when unshown.
func (m *Machine) Bounds() Rect { return m.bounds }

// RefinedCell returns the parent cell of the current refinement and
// whether the grid is refined.
func (m *Machine) RefinedCell() (int, bool) {
	return m.refinedCell, m.state == Refined
}

package overlay

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/voxctl/voxctl/internal/grid"
	"github.com/voxctl/voxctl/internal/logging"
)

// GridOverlay renders the numbered addressing grid. State transitions
// and drawing happen on its render loop; the dispatch side only
// enqueues and reads positions.
type GridOverlay struct {
	screenW int
	screenH int
	maxSize int

	mu      sync.Mutex // guards machine
	machine *grid.Machine

	surface Surface
	loop    *renderLoop
	sink    PositionSink
	visible atomic.Bool
	logger  logging.Logger
}

// NewGridOverlay creates a hidden grid overlay for the given screen.
// The sink, usually the Coordinator, receives position updates after
// every transition; it may be nil.
func NewGridOverlay(screenWidth, screenHeight int, surface Surface, sink PositionSink, logger logging.Logger) *GridOverlay {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	return &GridOverlay{
		screenW: screenWidth,
		screenH: screenHeight,
		maxSize: 9,
		machine: grid.NewMachine(screenWidth, screenHeight),
		surface: surface,
		loop:    newRenderLoop(logger),
		sink:    sink,
		logger:  logger,
	}
}

// Kind returns KindGrid.
func (g *GridOverlay) Kind() Kind { return KindGrid }

// ValidateBeforeShow rejects degenerate screens and out-of-range sizes.
func (g *GridOverlay) ValidateBeforeShow(opts Options) bool {
	if g.screenW < 1 || g.screenH < 1 {
		return false
	}
	size := opts.Int("size", grid.DefaultSize)
	return size >= 2 && size <= g.maxSize
}

// Show enqueues a transition to the full grid and returns immediately.
func (g *GridOverlay) Show(opts Options) {
	size := opts.Int("size", grid.DefaultSize)
	g.loop.enqueue("grid.show", func() {
		g.mu.Lock()
		g.machine.Show(size)
		bounds, positions := g.machine.Bounds(), g.machine.ElementPositions()
		g.mu.Unlock()

		if err := g.surface.RenderGrid(bounds, size, positions); err != nil {
			g.logger.Error("grid render failed", "error", err)
			return
		}
		g.visible.Store(true)
		if g.sink != nil {
			g.sink.SetElementPositions(KindGrid, positions)
		}
	})
}

// Refine validates the cell against the current grid state and, when
// valid, enqueues the zoom. The validation reads a snapshot; staleness
// of one pending frame is tolerated.
func (g *GridOverlay) Refine(cell int) bool {
	g.mu.Lock()
	state, size := g.machine.State(), g.machine.Size()
	g.mu.Unlock()

	if state == grid.Unshown || cell < 1 || cell > size*size {
		return false
	}

	g.loop.enqueue("grid.refine", func() {
		g.mu.Lock()
		ok := g.machine.Refine(cell)
		bounds := g.machine.Bounds()
		refinedSize := g.machine.Size()
		positions := g.machine.ElementPositions()
		g.mu.Unlock()
		if !ok {
			return
		}

		if err := g.surface.RenderGrid(bounds, refinedSize, positions); err != nil {
			g.logger.Error("grid render failed", "error", err)
			return
		}
		if g.sink != nil {
			g.sink.SetElementPositions(KindGrid, positions)
		}
	})
	return true
}

// Hide enqueues clearing the grid.
func (g *GridOverlay) Hide() {
	g.loop.enqueue("grid.hide", func() {
		g.mu.Lock()
		g.machine.Hide()
		g.mu.Unlock()

		g.visible.Store(false)
		if err := g.surface.Clear(); err != nil {
			g.logger.Error("grid clear failed", "error", err)
		}
	})
}

// Visible reports whether the grid has been rendered and not hidden.
func (g *GridOverlay) Visible() bool { return g.visible.Load() }

// ElementPosition resolves a cell number against the current grid
// state. Serves as the fallback when the shared table has no entry.
func (g *GridOverlay) ElementPosition(n int) (image.Point, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.machine.ElementPosition(n)
}

// State returns the current addressing state.
func (g *GridOverlay) State() grid.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.machine.State()
}

// Close stops the render loop after draining pending operations.
func (g *GridOverlay) Close() { g.loop.close() }

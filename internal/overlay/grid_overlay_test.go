package overlay

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/grid"
)

// flush blocks until every previously enqueued render operation ran.
func flush(l *renderLoop) {
	done := make(chan struct{})
	l.enqueue("flush", func() { close(done) })
	<-done
}

type recordingSink struct {
	mu      sync.Mutex
	updates []map[int]image.Point
}

func (s *recordingSink) SetElementPositions(_ Kind, positions map[int]image.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, positions)
}

func (s *recordingSink) last() map[int]image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.updates) == 0 {
		return nil
	}
	return s.updates[len(s.updates)-1]
}

func TestGridOverlayShowRendersAndPublishesPositions(t *testing.T) {
	sink := &recordingSink{}
	g := NewGridOverlay(900, 900, NullSurface{}, sink, nil)
	defer g.Close()

	g.Show(Options{"size": 3})
	flush(g.loop)

	assert.True(t, g.Visible())
	assert.Equal(t, grid.Full, g.State())

	positions := sink.last()
	require.Len(t, positions, 9)
	assert.Equal(t, image.Point{X: 450, Y: 450}, positions[5])
}

func TestGridOverlayRefine(t *testing.T) {
	sink := &recordingSink{}
	g := NewGridOverlay(1920, 1080, NullSurface{}, sink, nil)
	defer g.Close()

	// Refine before show fails
	assert.False(t, g.Refine(1))

	g.Show(Options{"size": 9})
	flush(g.loop)

	require.True(t, g.Refine(41))
	flush(g.loop)

	assert.Equal(t, grid.Refined, g.State())
	positions := sink.last()
	require.Len(t, positions, 9)

	// Out-of-range cell after refinement (grid is 3x3 now)
	assert.False(t, g.Refine(45))
}

func TestGridOverlayHide(t *testing.T) {
	g := NewGridOverlay(1920, 1080, NullSurface{}, nil, nil)
	defer g.Close()

	g.Show(Options{"size": 9})
	flush(g.loop)
	require.True(t, g.Visible())

	g.Hide()
	flush(g.loop)

	assert.False(t, g.Visible())
	assert.Equal(t, grid.Unshown, g.State())
	_, ok := g.ElementPosition(1)
	assert.False(t, ok)
}

func TestGridOverlayValidateBeforeShow(t *testing.T) {
	g := NewGridOverlay(1920, 1080, NullSurface{}, nil, nil)
	defer g.Close()

	assert.True(t, g.ValidateBeforeShow(Options{"size": 9}))
	assert.True(t, g.ValidateBeforeShow(nil)) // default size
	assert.False(t, g.ValidateBeforeShow(Options{"size": 1}))
	assert.False(t, g.ValidateBeforeShow(Options{"size": 10}))

	broken := NewGridOverlay(0, 0, NullSurface{}, nil, nil)
	defer broken.Close()
	assert.False(t, broken.ValidateBeforeShow(Options{"size": 9}))
}

func TestHelpOverlay(t *testing.T) {
	h := NewHelpOverlay(NullSurface{}, nil)
	defer h.Close()

	assert.False(t, h.ValidateBeforeShow(Options{}))
	assert.True(t, h.ValidateBeforeShow(Options{"text": "commands"}))

	h.Show(Options{"text": "commands"})
	flush(h.loop)
	assert.True(t, h.Visible())

	_, ok := h.ElementPosition(1)
	assert.False(t, ok)

	h.Hide()
	flush(h.loop)
	assert.False(t, h.Visible())
}

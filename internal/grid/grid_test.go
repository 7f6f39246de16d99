package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowFromAnyState(t *testing.T) {
	m := NewMachine(1920, 1080)
	assert.Equal(t, Unshown, m.State())

	require.True(t, m.Show(9))
	assert.Equal(t, Full, m.State())
	assert.Equal(t, 9, m.Size())
	assert.Equal(t, Rect{X: 0, Y: 0, W: 1920, H: 1080}, m.Bounds())

	// Show after refine resets to full screen
	require.True(t, m.Refine(45))
	require.True(t, m.Show(5))
	assert.Equal(t, Full, m.State())
	assert.Equal(t, 5, m.Size())
	assert.Equal(t, Rect{X: 0, Y: 0, W: 1920, H: 1080}, m.Bounds())
	_, refined := m.RefinedCell()
	assert.False(t, refined)
}

func TestShowInvalidSize(t *testing.T) {
	m := NewMachine(1920, 1080)
	assert.False(t, m.Show(0))
	assert.Equal(t, Unshown, m.State())
}

func TestRefineComputesSubBounds(t *testing.T) {
	m := NewMachine(1800, 900)
	require.True(t, m.Show(9))

	// Cell 1 is the top-left cell
	require.True(t, m.Refine(1))
	assert.Equal(t, Refined, m.State())
	assert.Equal(t, RefinedSize, m.Size())
	assert.Equal(t, Rect{X: 0, Y: 0, W: 200, H: 100}, m.Bounds())

	cell, refined := m.RefinedCell()
	assert.True(t, refined)
	assert.Equal(t, 1, cell)
}

func TestRefineBoundsAreSubsetOfParentCell(t *testing.T) {
	m := NewMachine(1920, 1080)
	require.True(t, m.Show(9))

	for _, cell := range []int{1, 5, 9, 37, 45, 81} {
		require.True(t, m.Show(9))
		parent, ok := m.CellBounds(cell)
		require.True(t, ok)

		require.True(t, m.Refine(cell))
		b := m.Bounds()
		assert.GreaterOrEqual(t, b.X, parent.X)
		assert.GreaterOrEqual(t, b.Y, parent.Y)
		assert.LessOrEqual(t, b.X+b.W, parent.X+parent.W+1e-9)
		assert.LessOrEqual(t, b.Y+b.H, parent.Y+parent.H+1e-9)
		assert.Less(t, b.W, 1920.0)
		assert.Less(t, b.H, 1080.0)
	}
}

func TestRefineCenterRoundTrip(t *testing.T) {
	// The center cell (5) of the refined 3x3 grid sits exactly at the
	// center of the parent cell.
	m := NewMachine(1920, 1080)

	for _, cell := range []int{1, 13, 41, 45, 81} {
		require.True(t, m.Show(9))
		parentCenter, ok := m.ElementPosition(cell)
		require.True(t, ok)

		require.True(t, m.Refine(cell))
		refinedCenter, ok := m.ElementPosition(5)
		require.True(t, ok)

		assert.Equal(t, parentCenter, refinedCenter, "cell %d", cell)
	}
}

func TestRefineInvalidCellIsNoOp(t *testing.T) {
	m := NewMachine(1920, 1080)
	require.True(t, m.Show(3))
	before := m.Bounds()

	assert.False(t, m.Refine(0))
	assert.False(t, m.Refine(10)) // 3x3 grid has 9 cells
	assert.False(t, m.Refine(-4))
	assert.Equal(t, Full, m.State())
	assert.Equal(t, before, m.Bounds())
}

func TestRefineWhileUnshown(t *testing.T) {
	m := NewMachine(1920, 1080)
	assert.False(t, m.Refine(1))
	assert.Equal(t, Unshown, m.State())
}

func TestRepeatedRefineNestsIntoActiveBounds(t *testing.T) {
	m := NewMachine(1920, 1080)
	require.True(t, m.Show(9))
	require.True(t, m.Refine(1))
	first := m.Bounds()

	// Second refine subdivides the refined bounds, not the screen
	require.True(t, m.Refine(9))
	second := m.Bounds()
	assert.GreaterOrEqual(t, second.X, first.X)
	assert.GreaterOrEqual(t, second.Y, first.Y)
	assert.InDelta(t, first.W/3, second.W, 1e-9)
	assert.InDelta(t, first.H/3, second.H, 1e-9)

	// After the first refinement the cell space is always 1..9
	assert.False(t, m.Refine(10))
}

func TestHideClearsEverything(t *testing.T) {
	m := NewMachine(1920, 1080)
	require.True(t, m.Show(9))
	require.True(t, m.Refine(45))

	m.Hide()
	assert.Equal(t, Unshown, m.State())
	assert.Equal(t, Rect{}, m.Bounds())
	_, ok := m.ElementPosition(1)
	assert.False(t, ok)
	assert.Nil(t, m.ElementPositions())
}

func TestElementPosition(t *testing.T) {
	m := NewMachine(900, 900)
	require.True(t, m.Show(3))

	// Cell 1 center
	pt, ok := m.ElementPosition(1)
	require.True(t, ok)
	assert.Equal(t, 150, pt.X)
	assert.Equal(t, 150, pt.Y)

	// Cell 5 is the exact screen center
	pt, ok = m.ElementPosition(5)
	require.True(t, ok)
	assert.Equal(t, 450, pt.X)
	assert.Equal(t, 450, pt.Y)

	// Cell 9 center
	pt, ok = m.ElementPosition(9)
	require.True(t, ok)
	assert.Equal(t, 750, pt.X)
	assert.Equal(t, 750, pt.Y)

	_, ok = m.ElementPosition(10)
	assert.False(t, ok)
	_, ok = m.ElementPosition(0)
	assert.False(t, ok)
}

func TestElementPositions(t *testing.T) {
	m := NewMachine(300, 300)
	require.True(t, m.Show(3))

	positions := m.ElementPositions()
	require.Len(t, positions, 9)
	assert.Equal(t, 50, positions[1].X)
	assert.Equal(t, 250, positions[9].Y)
}

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLoopAppliesInFIFOOrder(t *testing.T) {
	l := newRenderLoop(nil)

	var applied []int
	for i := 1; i <= 20; i++ {
		i := i
		l.enqueue("op", func() { applied = append(applied, i) })
	}
	l.close()

	require.Len(t, applied, 20)
	for i, n := range applied {
		assert.Equal(t, i+1, n)
	}
}

func TestRenderLoopIsolatesPanics(t *testing.T) {
	l := newRenderLoop(nil)

	var ran bool
	l.enqueue("boom", func() { panic("surface wedged") })
	l.enqueue("after", func() { ran = true })
	l.close()

	assert.True(t, ran)
}

func TestRenderLoopCloseIsIdempotent(t *testing.T) {
	l := newRenderLoop(nil)
	l.close()
	l.close()
}

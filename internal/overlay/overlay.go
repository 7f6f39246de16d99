// Package overlay coordinates the on-screen visual aids: the numbered
// grid and the command help panel.
//
// The Coordinator enforces that at most one overlay is visible at a
// time. Rendering surfaces are not thread-safe, so every overlay owns a
// single-consumer render queue; show/hide/refine requests from the
// dispatch side are enqueued and return immediately.
package overlay

import "image"

// Kind identifies an overlay type.
type Kind string

const (
	// KindGrid is the numbered screen grid.
	KindGrid Kind = "grid"
	// KindHelp is the command help panel.
	KindHelp Kind = "help"
)

// Options carries per-show parameters, looked up with defaults.
type Options map[string]any

// Int returns the int at key, or def when absent or mistyped.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return def
}

// String returns the string at key, or def when absent or mistyped.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Overlay is a visual aid managed by the Coordinator. Show and Hide are
// fire-and-forget: they enqueue work for the overlay's render loop.
type Overlay interface {
	Kind() Kind
	// ValidateBeforeShow gates showing, e.g. on invalid screen size.
	ValidateBeforeShow(opts Options) bool
	Show(opts Options)
	Hide()
	Visible() bool
	// ElementPosition resolves a numbered target when this overlay
	// exposes any; overlays without targets always report false.
	ElementPosition(n int) (image.Point, bool)
	// Close stops the overlay's render loop.
	Close()
}

// PositionSink receives element position updates from render threads.
type PositionSink interface {
	SetElementPositions(kind Kind, positions map[int]image.Point)
}

package overlay

import (
	"image"
	"sync"

	"github.com/voxctl/voxctl/internal/events"
	"github.com/voxctl/voxctl/internal/logging"
)

// Coordinator owns every overlay and enforces that at most one is
// visible at any instant. It also keeps the shared element position
// table that click-by-number commands read.
type Coordinator struct {
	mu        sync.Mutex
	overlays  map[Kind]Overlay
	active    Kind
	positions map[int]image.Point

	bus    *events.Bus
	logger logging.Logger
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator(bus *events.Bus, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	return &Coordinator{
		overlays: make(map[Kind]Overlay),
		bus:      bus,
		logger:   logger,
	}
}

// Register adds an overlay under its kind, replacing any previous one.
func (c *Coordinator) Register(ov Overlay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlays[ov.Kind()] = ov
}

// Show displays the overlay of the given kind. Any other visible
// overlay is hidden first, firing its hide hook, so at most one overlay
// is visible at a time. Returns false when the kind is unknown or the
// overlay declines to show.
func (c *Coordinator) Show(kind Kind, opts Options) bool {
	c.mu.Lock()

	ov, ok := c.overlays[kind]
	if !ok {
		c.mu.Unlock()
		c.logger.Warn("unknown overlay kind", "kind", string(kind))
		return false
	}
	if !ov.ValidateBeforeShow(opts) {
		c.mu.Unlock()
		c.logger.Debug("overlay declined to show", "kind", string(kind))
		return false
	}

	var hidden Kind
	if c.active != "" && c.active != kind {
		hidden = c.hideActiveLocked()
	}

	c.active = kind
	c.positions = nil
	ov.Show(opts)
	c.mu.Unlock()

	if hidden != "" {
		c.publish(events.OverlayHidden, hidden)
	}
	c.publish(events.OverlayShown, kind)
	return true
}

// Hide hides the overlay of the given kind when it is the visible one.
func (c *Coordinator) Hide(kind Kind) bool {
	c.mu.Lock()
	if c.active != kind {
		c.mu.Unlock()
		return false
	}
	hidden := c.hideActiveLocked()
	c.mu.Unlock()

	c.publish(events.OverlayHidden, hidden)
	return true
}

// HideCurrent hides whichever overlay is visible.
func (c *Coordinator) HideCurrent() bool {
	c.mu.Lock()
	if c.active == "" {
		c.mu.Unlock()
		return false
	}
	hidden := c.hideActiveLocked()
	c.mu.Unlock()

	c.publish(events.OverlayHidden, hidden)
	return true
}

// Toggle shows the overlay when hidden and hides it when it is the
// visible one.
func (c *Coordinator) Toggle(kind Kind, opts Options) bool {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if active == kind {
		return c.Hide(kind)
	}
	return c.Show(kind, opts)
}

// hideActiveLocked fires the active overlay's hide hook and clears the
// shared state. The caller publishes the returned kind after unlocking.
func (c *Coordinator) hideActiveLocked() Kind {
	ov := c.overlays[c.active]
	kind := c.active
	c.active = ""
	c.positions = nil
	if ov != nil {
		ov.Hide()
	}
	return kind
}

// Visible reports whether any overlay is currently shown.
func (c *Coordinator) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != ""
}

// ActiveKind returns the kind of the visible overlay, empty when none.
func (c *Coordinator) ActiveKind() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetElementPositions replaces the shared position table. Updates from
// an overlay that is no longer active are discarded; they belong to a
// frame that has already been replaced.
func (c *Coordinator) SetElementPositions(kind Kind, positions map[int]image.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != kind {
		return
	}
	c.positions = positions
}

// ElementPosition resolves a numbered target. The shared table wins;
// when it lacks the entry, the active overlay's own accessor is asked.
func (c *Coordinator) ElementPosition(n int) (image.Point, bool) {
	c.mu.Lock()
	pt, ok := c.positions[n]
	ov := c.overlays[c.active]
	active := c.active != ""
	c.mu.Unlock()

	if ok {
		return pt, true
	}
	if active && ov != nil {
		return ov.ElementPosition(n)
	}
	return image.Point{}, false
}

// ElementPositions returns a copy of the shared position table.
func (c *Coordinator) ElementPositions() map[int]image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.positions == nil {
		return nil
	}
	out := make(map[int]image.Point, len(c.positions))
	for n, pt := range c.positions {
		out[n] = pt
	}
	return out
}

// Close stops every overlay's render loop.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ov := range c.overlays {
		ov.Close()
	}
}

func (c *Coordinator) publish(t events.Type, kind Kind) {
	if c.bus != nil {
		c.bus.Publish(events.New(t, map[string]any{"kind": string(kind)}))
	}
}

// ShowGrid displays the numbered grid with the given subdivision count.
func (c *Coordinator) ShowGrid(size int) bool {
	return c.Show(KindGrid, Options{"size": size})
}

// RefineGrid zooms the visible grid into a cell.
func (c *Coordinator) RefineGrid(cell int) bool {
	c.mu.Lock()
	ov := c.overlays[KindGrid]
	active := c.active == KindGrid
	c.mu.Unlock()

	if !active || ov == nil {
		return false
	}
	refiner, ok := ov.(interface{ Refine(cell int) bool })
	if !ok {
		return false
	}
	return refiner.Refine(cell)
}

// ShowHelp displays the command help overlay with the given text.
func (c *Coordinator) ShowHelp(text string) bool {
	return c.Show(KindHelp, Options{"text": text})
}

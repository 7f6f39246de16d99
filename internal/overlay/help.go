package overlay

import (
	"image"
	"sync/atomic"

	"github.com/voxctl/voxctl/internal/logging"
)

// HelpOverlay renders the command reference panel.
type HelpOverlay struct {
	surface Surface
	loop    *renderLoop
	visible atomic.Bool
	logger  logging.Logger
}

// NewHelpOverlay creates a hidden help overlay.
func NewHelpOverlay(surface Surface, logger logging.Logger) *HelpOverlay {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	return &HelpOverlay{
		surface: surface,
		loop:    newRenderLoop(logger),
		logger:  logger,
	}
}

// Kind returns KindHelp.
func (h *HelpOverlay) Kind() Kind { return KindHelp }

// ValidateBeforeShow requires non-empty help text.
func (h *HelpOverlay) ValidateBeforeShow(opts Options) bool {
	return opts.String("text", "") != ""
}

// Show enqueues rendering the help text.
func (h *HelpOverlay) Show(opts Options) {
	text := opts.String("text", "")
	h.loop.enqueue("help.show", func() {
		if err := h.surface.RenderText(text); err != nil {
			h.logger.Error("help render failed", "error", err)
			return
		}
		h.visible.Store(true)
	})
}

// Hide enqueues clearing the panel.
func (h *HelpOverlay) Hide() {
	h.loop.enqueue("help.hide", func() {
		h.visible.Store(false)
		if err := h.surface.Clear(); err != nil {
			h.logger.Error("help clear failed", "error", err)
		}
	})
}

// Visible reports whether the panel is shown.
func (h *HelpOverlay) Visible() bool { return h.visible.Load() }

// ElementPosition always reports false; the help panel has no numbered
// targets.
func (h *HelpOverlay) ElementPosition(int) (image.Point, bool) {
	return image.Point{}, false
}

// Close stops the render loop.
func (h *HelpOverlay) Close() { h.loop.close() }

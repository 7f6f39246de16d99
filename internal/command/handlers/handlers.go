// Package handlers contains the built-in voice commands: mouse and
// keyboard control, navigation, overlays, window management,
// screenshots, and user-defined custom commands.
package handlers

import (
	"github.com/spf13/afero"

	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/parser"
	"github.com/voxctl/voxctl/internal/screenshot"
)

// base carries the static metadata shared by most built-in commands.
type base struct {
	name        string
	priority    int
	description string
	examples    []string
}

func (b base) Name() string        { return b.name }
func (b base) Priority() int       { return b.priority }
func (b base) Description() string { return b.description }
func (b base) Examples() []string  { return b.examples }

// RegisterBuiltins registers every built-in command plus the custom
// commands defined in configuration.
func RegisterBuiltins(reg *command.Registry, p *parser.Parser, cfg *config.Config, fs afero.Fs, capturer screenshot.Capturer) {
	// Mouse
	reg.Register(NewClick())
	reg.Register(NewRightClick())
	reg.Register(NewDoubleClick())
	reg.Register(NewMiddleClick())
	reg.Register(NewScroll())
	reg.Register(NewMouseMove())
	reg.Register(NewClickNumber(p))
	reg.Register(NewMoveToNumber(p))
	reg.Register(NewDragBetweenNumbers(p))
	reg.Register(NewRefineGrid(p))

	// Keyboard
	reg.Register(NewEnter())
	reg.Register(NewTab())
	reg.Register(NewEscape())
	reg.Register(NewSpace())
	reg.Register(NewBackspace())
	reg.Register(NewDeleteWord())
	reg.Register(NewDeleteLine())
	reg.Register(NewClipboardOps())
	reg.Register(NewSelectAll())
	reg.Register(NewUndo())
	reg.Register(NewRedo())
	reg.Register(NewSave())
	reg.Register(NewTypeText())
	reg.Register(NewTypeSymbol())

	// Navigation
	reg.Register(NewArrowKey())
	reg.Register(NewPageNavigation())
	reg.Register(NewHomeEnd())

	// Overlays
	reg.Register(NewShowGrid(cfg))
	reg.Register(NewHideOverlay())
	reg.Register(NewShowHelp(reg.Help))

	// Windows
	reg.Register(NewMoveWindow())
	reg.Register(NewMinimize())
	reg.Register(NewMaximize())
	reg.Register(NewCloseWindow())
	reg.Register(NewSwitchWindow())

	// Screenshots
	reg.Register(NewScreenshot(fs, capturer))
	reg.Register(NewReferenceScreenshot(fs))

	// User-defined
	for _, cmd := range LoadCustomCommands(cfg) {
		reg.Register(cmd)
	}
}

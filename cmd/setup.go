package cmd

import (
	"os"

	"github.com/spf13/afero"

	"github.com/voxctl/voxctl/internal/automation"
	"github.com/voxctl/voxctl/internal/colors"
	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/command/handlers"
	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/events"
	"github.com/voxctl/voxctl/internal/logging"
	"github.com/voxctl/voxctl/internal/overlay"
	"github.com/voxctl/voxctl/internal/parser"
	"github.com/voxctl/voxctl/internal/screenshot"
	"github.com/voxctl/voxctl/internal/textproc"
)

// fallbackWidth and fallbackHeight are used when no display can be
// detected, matching the most common desktop resolution.
const (
	fallbackWidth  = 1920
	fallbackHeight = 1080
)

// runtime bundles the collaborators shared by all subcommands.
type runtime struct {
	fs          afero.Fs
	cfg         *config.Config
	logger      logging.Logger
	bus         *events.Bus
	registry    *command.Registry
	processor   *textproc.Processor
	parser      *parser.Parser
	coordinator *overlay.Coordinator
	cmdCtx      *command.Context
}

// newRuntime loads configuration and wires the command stack. Overlay
// surfaces are only attached when withOverlays is set; commands that
// never show a grid skip them.
func newRuntime(withOverlays bool) (*runtime, error) {
	fs := afero.NewOsFs()
	cfg, err := config.Load(fs, cfgFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.Init(logging.FromGlobalConfig(cfg))
	if err != nil {
		return nil, err
	}
	colors.SetLogger(logger)

	bus := events.NewBus(logger)
	client := automation.NewDefaultClient()
	width, height := screenSize()

	opts := []parser.Option{
		parser.WithFuzzyThreshold(cfg.GetFloat(parser.DefaultFuzzyThreshold, "parser", "fuzzy_threshold")),
	}
	if ignored := cfg.GetStringSlice("parser", "ignored_words"); len(ignored) > 0 {
		opts = append(opts, parser.WithIgnoredWords(ignored))
	}
	p := parser.New(opts...)

	coord := overlay.NewCoordinator(bus, logger)
	if withOverlays {
		surface := overlay.NewTermSurface(os.Stdout)
		coord.Register(overlay.NewGridOverlay(width, height, surface, coord, logger))
		coord.Register(overlay.NewHelpOverlay(surface, logger))
	}

	registry := command.NewRegistry(logger)
	handlers.RegisterBuiltins(registry, p, cfg, fs, screenshot.NewDisplayCapturer(0))

	cmdCtx := &command.Context{
		Config:       cfg,
		Keyboard:     client,
		Mouse:        client,
		Clipboard:    client,
		Launcher:     client,
		Overlays:     coord,
		Events:       bus,
		ScreenWidth:  width,
		ScreenHeight: height,
	}

	return &runtime{
		fs:          fs,
		cfg:         cfg,
		logger:      logger,
		bus:         bus,
		registry:    registry,
		processor:   textproc.New(cfg),
		parser:      p,
		coordinator: coord,
		cmdCtx:      cmdCtx,
	}, nil
}

// close releases the runtime's resources.
func (r *runtime) close() {
	r.coordinator.Close()
	if err := r.logger.Shutdown(); err != nil {
		colors.Warning("closing log file: " + err.Error())
	}
}

func screenSize() (int, int) {
	bounds := screenshot.PrimaryBounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return bounds.Dx(), bounds.Dy()
}

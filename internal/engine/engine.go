// Package engine runs the voice control pipeline: captured utterances
// are transcribed, normalized, and dispatched as commands, with
// unmatched text optionally typed as dictation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voxctl/voxctl/internal/audio"
	"github.com/voxctl/voxctl/internal/command"
	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/events"
	"github.com/voxctl/voxctl/internal/logging"
	"github.com/voxctl/voxctl/internal/parser"
	"github.com/voxctl/voxctl/internal/textproc"
	"github.com/voxctl/voxctl/internal/transcribe"
)

// Listener captures one utterance per call.
type Listener interface {
	Capture(ctx context.Context) (*audio.Utterance, error)
}

// Config wires the engine's collaborators.
type Config struct {
	Settings       *config.Config
	Bus            *events.Bus
	Registry       *command.Registry
	Processor      *textproc.Processor
	Parser         *parser.Parser
	CommandContext *command.Context
	// Listener and Transcriber may be nil for one-shot text dispatch.
	Listener    Listener
	Transcriber transcribe.Transcriber
	Logger      logging.Logger
}

// Engine is the dictation pipeline.
type Engine struct {
	bus         *events.Bus
	registry    *command.Registry
	processor   *textproc.Processor
	parser      *parser.Parser
	cmdCtx      *command.Context
	listener    Listener
	transcriber transcribe.Transcriber
	logger      logging.Logger
	commandOnly bool
}

// New validates the wiring and creates an engine.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if cfg.Processor == nil {
		return nil, fmt.Errorf("processor is nil")
	}
	if cfg.CommandContext == nil {
		return nil, fmt.Errorf("command context is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	commandOnly := true
	if cfg.Settings != nil {
		commandOnly = cfg.Settings.GetBool(true, "text_processing", "command_only_mode")
	}
	return &Engine{
		bus:         cfg.Bus,
		registry:    cfg.Registry,
		processor:   cfg.Processor,
		parser:      cfg.Parser,
		cmdCtx:      cfg.CommandContext,
		listener:    cfg.Listener,
		transcriber: cfg.Transcriber,
		logger:      logger,
		commandOnly: commandOnly,
	}, nil
}

// Run captures and dispatches utterances until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if e.listener == nil || e.transcriber == nil {
		return fmt.Errorf("listener and transcriber are required to run the pipeline")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		utt, err := e.listener.Capture(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("capture utterance: %w", err)
		}
		if utt == nil || len(utt.Samples) == 0 {
			continue
		}
		text, ok := e.transcribeUtterance(utt)
		if !ok || text == "" {
			continue
		}
		if err := e.ProcessText(text); err != nil {
			e.logger.Error("processing utterance", "text", text, "error", err)
		}
	}
}

// transcribeUtterance runs the transcriber and publishes the
// transcription lifecycle events.
func (e *Engine) transcribeUtterance(utt *audio.Utterance) (string, bool) {
	e.publish(events.TranscriptionStarted, map[string]any{
		"samples":  len(utt.Samples),
		"duration": utt.Duration().Milliseconds(),
	})

	start := time.Now()
	text, err := e.transcriber.Transcribe(utt.Samples)
	if err != nil {
		if errors.Is(err, transcribe.ErrModelLoading) {
			e.logger.Warn("model still loading, dropping utterance")
		} else {
			e.logger.Error("transcription failed", "error", err)
		}
		e.publish(events.TranscriptionFailed, map[string]any{"error": err.Error()})
		return "", false
	}

	e.publish(events.TranscriptionCompleted, map[string]any{
		"text":       text,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	e.logger.Info("transcribed", "text", text)
	return text, true
}

// ProcessText normalizes text and routes it: edit actions from the text
// processor run directly, matched commands execute through the
// registry, and anything left is typed unless command-only mode is on.
func (e *Engine) ProcessText(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if e.parser != nil {
		text = e.parser.FilterIgnoredWords(text)
	}

	processed, action := e.processor.Process(text)
	e.publish(events.TextProcessed, map[string]any{
		"original":       text,
		"processed":      processed,
		"command_action": action,
	})

	if action != "" {
		return e.runEditAction(action)
	}
	if processed == "" {
		return nil
	}

	result, executed, err := e.registry.Process(e.cmdCtx, processed, true)
	if err != nil {
		return err
	}
	if executed {
		if result != "" {
			return e.typeText(result)
		}
		return nil
	}

	if e.commandOnly {
		e.logger.Info("no command matched", "text", processed)
		return nil
	}
	return e.typeText(processed)
}

// runEditAction handles text-processor actions that edit already-typed
// text rather than dispatching a command.
func (e *Engine) runEditAction(action string) error {
	kb := e.cmdCtx.Keyboard
	if kb == nil {
		return fmt.Errorf("no keyboard for edit action %q", action)
	}
	switch action {
	case "undo_last":
		n := e.processor.LastTextLength()
		e.logger.Info("undoing last dictation", "chars", n)
		for i := 0; i < n; i++ {
			if err := kb.Press("backspace"); err != nil {
				return err
			}
		}
		return nil
	case "clear_line":
		if err := kb.Press("home"); err != nil {
			return err
		}
		if err := kb.Combo("shift", "end"); err != nil {
			return err
		}
		return kb.Press("backspace")
	default:
		e.logger.Warn("unknown edit action", "action", action)
		return nil
	}
}

func (e *Engine) typeText(text string) error {
	kb := e.cmdCtx.Keyboard
	if kb == nil {
		return fmt.Errorf("no keyboard to type with")
	}
	if err := kb.Type(text); err != nil {
		return fmt.Errorf("type text: %w", err)
	}
	e.publish(events.TextTyped, map[string]any{
		"text":   text,
		"length": len(text),
	})
	return nil
}

func (e *Engine) publish(t events.Type, data map[string]any) {
	if e.bus != nil {
		e.bus.Publish(events.New(t, data))
	}
}

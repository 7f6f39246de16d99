// Package transcribe converts captured PCM audio into text with a
// whisper.cpp model.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/voxctl/voxctl/internal/logging"
)

// ErrModelLoading is returned while the model is still loading in the
// background.
var ErrModelLoading = errors.New("whisper model is still loading")

// Transcriber converts an utterance's 16-bit PCM samples into text.
type Transcriber interface {
	Transcribe(samples []int16) (string, error)
}

// Whisper is a whisper.cpp backed Transcriber. The model loads in a
// background goroutine so startup is not blocked by multi-hundred-MB
// model files; Transcribe fails fast with ErrModelLoading until then.
type Whisper struct {
	language string
	logger   logging.Logger

	ready   chan struct{}
	loadErr error

	mu    sync.Mutex
	model whisper.Model
}

// NewWhisper starts loading the model at modelPath and returns
// immediately.
func NewWhisper(modelPath, language string, logger logging.Logger) *Whisper {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	w := &Whisper{
		language: language,
		logger:   logger,
		ready:    make(chan struct{}),
	}
	go w.load(modelPath)
	return w
}

func (w *Whisper) load(path string) {
	defer close(w.ready)
	model, err := whisper.New(path)
	if err != nil {
		w.loadErr = fmt.Errorf("load whisper model %s: %w", path, err)
		w.logger.Error("loading whisper model", "path", path, "error", err)
		return
	}
	w.model = model
	w.logger.Info("whisper model loaded", "path", path)
}

// Ready reports whether the model finished loading successfully.
func (w *Whisper) Ready() bool {
	select {
	case <-w.ready:
		return w.loadErr == nil
	default:
		return false
	}
}

// WaitReady blocks until the model is loaded or ctx is cancelled.
func (w *Whisper) WaitReady(ctx context.Context) error {
	select {
	case <-w.ready:
		return w.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Transcribe runs the model over the samples and returns the joined,
// filtered segment text.
func (w *Whisper) Transcribe(samples []int16) (string, error) {
	select {
	case <-w.ready:
	default:
		return "", ErrModelLoading
	}
	if w.loadErr != nil {
		return "", w.loadErr
	}
	if len(samples) == 0 {
		return "", nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	wctx, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("create whisper context: %w", err)
	}
	if w.language != "" {
		if err := wctx.SetLanguage(w.language); err != nil {
			w.logger.Warn("setting transcription language", "language", w.language, "error", err)
		}
	}

	if err := wctx.Process(Float32Samples(samples), nil); err != nil {
		return "", fmt.Errorf("process audio: %w", err)
	}

	texts, err := collectSegments(wctx)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(strings.Join(texts, " "))
	w.logger.Debug("transcription complete", "text", text)
	return text, nil
}

// Close releases the model.
func (w *Whisper) Close() error {
	<-w.ready
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.model == nil {
		return nil
	}
	err := w.model.Close()
	w.model = nil
	return err
}

// Float32Samples converts 16-bit PCM to the normalized float32 samples
// whisper expects.
func Float32Samples(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}

type segmentSource interface {
	NextSegment() (whisper.Segment, error)
}

// collectSegments drains the context, dropping hallucinated segments.
func collectSegments(src segmentSource) ([]string, error) {
	seen := make(map[string]bool)
	var texts []string
	for {
		segment, err := src.NextSegment()
		if errors.Is(err, io.EOF) {
			return texts, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		if !keepSegment(text, seen) {
			continue
		}
		seen[text] = true
		texts = append(texts, text)
	}
}

// keepSegment rejects non-speech annotations like "(music)" or
// "[BLANK_AUDIO]" and exact repeats, both of which whisper emits on
// silence or noise.
func keepSegment(text string, seen map[string]bool) bool {
	if text == "" {
		return false
	}
	first, last := text[0], text[len(text)-1]
	if first == '(' || first == '[' || last == ')' || last == ']' {
		return false
	}
	return !seen[text]
}

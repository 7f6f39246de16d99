package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/zenwerk/go-wave"

	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/events"
	"github.com/voxctl/voxctl/internal/logging"
)

const (
	// DefaultSampleRate is what the transcription model expects.
	DefaultSampleRate   = 16000
	DefaultChannels     = 1
	DefaultFrameSamples = 8196
	DefaultQuietTime    = 200 * time.Millisecond

	// onsetRatio is how much the spectral flux must rise over its
	// baseline to count as a speech onset, and how far it must fall
	// below the in-speech level to count as quiet.
	onsetRatio = 1.75

	// prebufferFrames of audio before the onset are kept so the first
	// syllable is not clipped.
	prebufferFrames = 2
)

// Utterance is one captured stretch of speech.
type Utterance struct {
	Samples    []int16
	SampleRate int
	// WavPath is the dump file location, empty when dumping is off.
	WavPath string
}

// Duration returns the utterance length in wall time.
func (u *Utterance) Duration() time.Duration {
	if u.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(u.Samples)) * time.Second / time.Duration(u.SampleRate)
}

// Listener segments a capture source into utterances. A capture starts
// when spectral flux rises sharply on a frame with audible energy and
// ends after the configured stretch of quiet.
type Listener struct {
	source Source
	fs     afero.Fs
	bus    *events.Bus
	logger logging.Logger
	beeper Beeper

	sampleRate   int
	frameSamples int
	quietTime    time.Duration
	energy       *EnergyDetector

	beepOnStart bool
	beepOnStop  bool
	startBeep   [2]int
	stopBeep    [2]int

	dumpWav bool
	dumpDir string
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithBeeper replaces the feedback tone player. A nil beeper disables
// feedback tones.
func WithBeeper(b Beeper) ListenerOption {
	return func(l *Listener) {
		l.beeper = b
	}
}

// NewListener creates a listener reading frames from source, configured
// from the audio section of cfg.
func NewListener(cfg *config.Config, source Source, fs afero.Fs, bus *events.Bus, logger logging.Logger, opts ...ListenerOption) *Listener {
	if logger == nil {
		logger, _ = logging.Init(logging.Config{})
	}
	l := &Listener{
		source:       source,
		fs:           fs,
		bus:          bus,
		logger:       logger,
		beeper:       PortAudioBeeper{},
		sampleRate:   DefaultSampleRate,
		frameSamples: DefaultFrameSamples,
		quietTime:    DefaultQuietTime,
		energy:       NewEnergyDetector(DefaultEnergyThreshold),
	}
	if cfg != nil {
		l.sampleRate = cfg.GetInt(DefaultSampleRate, "audio", "sample_rate")
		l.frameSamples = cfg.GetInt(DefaultFrameSamples, "audio", "buffer_samples")
		l.quietTime = time.Duration(cfg.GetInt(200, "audio", "quiet_ms")) * time.Millisecond
		l.beepOnStart = cfg.GetBool(true, "audio", "beep_on_start")
		l.beepOnStop = cfg.GetBool(true, "audio", "beep_on_stop")
		l.startBeep = [2]int{
			cfg.GetInt(800, "audio", "start_beep_frequency"),
			cfg.GetInt(100, "audio", "start_beep_duration"),
		}
		l.stopBeep = [2]int{
			cfg.GetInt(600, "audio", "stop_beep_frequency"),
			cfg.GetInt(100, "audio", "stop_beep_duration"),
		}
		l.dumpWav = cfg.GetBool(false, "audio", "dump_wav")
		l.dumpDir = cfg.Get("", "audio", "dump_dir")
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Capture records one utterance. It blocks until the end-of-utterance
// quiet period or until ctx is cancelled.
func (l *Listener) Capture(ctx context.Context) (*Utterance, error) {
	l.beep(l.beepOnStart, l.startBeep)

	if err := l.source.Start(); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}
	defer func() {
		if err := l.source.Stop(); err != nil {
			l.logger.Warn("stopping capture source", "error", err)
		}
	}()

	l.publish(events.RecordingStarted, map[string]any{"timestamp": time.Now().Unix()})

	samples, err := l.listen(ctx)

	l.beep(l.beepOnStop, l.stopBeep)
	l.publish(events.RecordingStopped, map[string]any{
		"timestamp": time.Now().Unix(),
		"samples":   len(samples),
	})

	if err != nil {
		return nil, err
	}

	utt := &Utterance{Samples: samples, SampleRate: l.sampleRate}
	if l.dumpWav && len(samples) > 0 {
		path, dumpErr := l.writeWav(samples)
		if dumpErr != nil {
			l.logger.Warn("dumping utterance wav", "error", dumpErr)
		} else {
			utt.WavPath = path
		}
	}
	l.logger.Debug("utterance captured", "samples", len(samples), "duration", utt.Duration())
	return utt, nil
}

// listen runs the onset and quiet detection loop.
func (l *Listener) listen(ctx context.Context) ([]int16, error) {
	var (
		heardSomething bool
		quiet          bool
		quietStart     time.Time
		lastFlux       float64
		samples        []int16
	)

	vad := NewVAD(l.frameSamples)
	ring := newRingBuffer(prebufferFrames * l.frameSamples)
	l.energy.Reset()

	for {
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		frame, err := l.source.Read()
		if err != nil {
			return nil, err
		}

		if !heardSomething {
			ring.Add(frame)
		} else {
			samples = append(samples, frame...)
		}

		audible := l.energy.Detect(frame)
		flux := vad.Flux(frame)

		if lastFlux == 0 {
			lastFlux = flux
			continue
		}

		if heardSomething {
			if flux*onsetRatio <= lastFlux {
				if !quiet {
					quietStart = time.Now()
				} else if time.Since(quietStart) > l.quietTime {
					return samples, nil
				}
				quiet = true
			} else {
				quiet = false
				lastFlux = flux
			}
		} else {
			if audible && flux >= lastFlux*onsetRatio {
				heardSomething = true
				samples = append(samples, ring.Read()...)
				ring.Clear()
			}
			lastFlux = flux
		}
	}
}

// writeWav dumps the samples as a 16-bit mono wav file into the dump
// directory and returns its path.
func (l *Listener) writeWav(samples []int16) (string, error) {
	dir := l.dumpDir
	if dir == "" {
		dir = "."
	}
	if err := l.fs.MkdirAll(dir, config.FileModeDir); err != nil {
		return "", fmt.Errorf("create dump dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("utterance_%s.wav", time.Now().Format("20060102_150405")))

	f, err := l.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create wav file: %w", err)
	}

	writer, err := wave.NewWriter(wave.WriterParam{
		Out:           f,
		Channel:       DefaultChannels,
		SampleRate:    l.sampleRate,
		BitsPerSample: 16,
	})
	if err != nil {
		f.Close()
		return "", fmt.Errorf("create wav writer: %w", err)
	}
	if _, err := writer.WriteSample16(samples); err != nil {
		writer.Close()
		return "", fmt.Errorf("write wav samples: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close wav writer: %w", err)
	}
	return path, nil
}

func (l *Listener) beep(enabled bool, spec [2]int) {
	if !enabled || l.beeper == nil {
		return
	}
	if err := l.beeper.Beep(spec[0], spec[1]); err != nil {
		l.logger.Warn("playing feedback beep", "error", err)
	}
}

func (l *Listener) publish(t events.Type, data map[string]any) {
	if l.bus != nil {
		l.bus.Publish(events.New(t, data))
	}
}

package audio

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxctl/voxctl/internal/config"
	"github.com/voxctl/voxctl/internal/events"
)

type scriptedSource struct {
	frames  [][]int16
	i       int
	started bool
	stopped bool
	closed  bool
}

func (s *scriptedSource) Start() error { s.started = true; return nil }
func (s *scriptedSource) Stop() error  { s.stopped = true; return nil }
func (s *scriptedSource) Close() error { s.closed = true; return nil }

func (s *scriptedSource) Read() ([]int16, error) {
	if s.i >= len(s.frames) {
		return nil, fmt.Errorf("no more frames")
	}
	frame := s.frames[s.i]
	s.i++
	return frame, nil
}

func listenerConfig(t *testing.T) *config.Config {
	t.Helper()
	fs := afero.NewMemMapFs()
	content := `
[audio]
sample_rate = 16000
buffer_samples = 256
quiet_ms = 0
beep_on_start = false
beep_on_stop = false
dump_wav = true
dump_dir = "/dumps"
`
	require.NoError(t, afero.WriteFile(fs, "/config.toml", []byte(content), 0644))
	cfg, err := config.Load(fs, "/config.toml")
	require.NoError(t, err)
	return cfg
}

type eventLog struct {
	mu    sync.Mutex
	types []events.Type
	data  []map[string]any
}

func (e *eventLog) record(ev events.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, ev.Type)
	e.data = append(e.data, ev.Data)
}

func TestCaptureSegmentsUtterance(t *testing.T) {
	const frameSize = 256

	source := &scriptedSource{frames: [][]int16{
		noiseFrame(5, frameSize),                  // baseline, prebuffered
		sineFrame(440, 8000, frameSize, 16000),    // onset
		sineFrame(1200, 12000, frameSize, 16000),  // sustained speech
		make([]int16, frameSize),                  // quiet begins
		make([]int16, frameSize),                  // quiet exceeds threshold
	}}

	fs := afero.NewMemMapFs()
	bus := events.NewBus(nil)
	log := &eventLog{}
	bus.Subscribe(events.RecordingStarted, log.record)
	bus.Subscribe(events.RecordingStopped, log.record)

	l := NewListener(listenerConfig(t), source, fs, bus, nil, WithBeeper(nil))

	utt, err := l.Capture(context.Background())
	require.NoError(t, err)

	// Two prebuffered frames plus the three heard after onset
	assert.Len(t, utt.Samples, 5*frameSize)
	assert.Equal(t, 16000, utt.SampleRate)
	assert.Equal(t, utt.Duration().Milliseconds(), int64(5*frameSize*1000/16000))

	assert.True(t, source.started)
	assert.True(t, source.stopped)

	require.Equal(t, []events.Type{events.RecordingStarted, events.RecordingStopped}, log.types)
	assert.Equal(t, 5*frameSize, log.data[1]["samples"])

	// Utterance was dumped as a wav file
	require.NotEmpty(t, utt.WavPath)
	exists, err := afero.Exists(fs, utt.WavPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCaptureHonorsCancellation(t *testing.T) {
	source := &scriptedSource{frames: [][]int16{
		make([]int16, 256),
	}}

	l := NewListener(listenerConfig(t), source, afero.NewMemMapFs(), nil, nil, WithBeeper(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCaptureIgnoresInaudibleFlux(t *testing.T) {
	// Flux spikes from inaudible noise must not trigger an onset: with
	// no onset the source runs dry and Capture surfaces the read error.
	source := &scriptedSource{frames: [][]int16{
		noiseFrame(1, 256),
		noiseFrame(5, 256),
		noiseFrame(1, 256),
		noiseFrame(5, 256),
	}}

	l := NewListener(listenerConfig(t), source, afero.NewMemMapFs(), nil, nil, WithBeeper(nil))

	_, err := l.Capture(context.Background())
	assert.Error(t, err)
}

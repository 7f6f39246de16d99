package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Initialize prepares the audio subsystem. Must be called once before
// opening a source and balanced with Terminate.
func Initialize() error {
	return portaudio.Initialize()
}

// Terminate releases the audio subsystem.
func Terminate() error {
	return portaudio.Terminate()
}

// Source yields fixed-size frames of 16-bit PCM from a capture device.
type Source interface {
	Start() error
	// Read blocks until the next frame is available.
	Read() ([]int16, error)
	Stop() error
	Close() error
}

type portaudioSource struct {
	stream *portaudio.Stream
	in     []int16
}

// OpenDefaultSource opens the default capture device.
func OpenDefaultSource(sampleRate, channels, frameSamples int) (Source, error) {
	in := make([]int16, frameSamples)
	stream, err := portaudio.OpenDefaultStream(channels, 0, float64(sampleRate), len(in), in)
	if err != nil {
		return nil, fmt.Errorf("open capture stream: %w", err)
	}
	return &portaudioSource{stream: stream, in: in}, nil
}

func (s *portaudioSource) Start() error {
	return s.stream.Start()
}

func (s *portaudioSource) Read() ([]int16, error) {
	if err := s.stream.Read(); err != nil {
		return nil, fmt.Errorf("read capture stream: %w", err)
	}
	frame := make([]int16, len(s.in))
	copy(frame, s.in)
	return frame, nil
}

func (s *portaudioSource) Stop() error {
	return s.stream.Stop()
}

func (s *portaudioSource) Close() error {
	return s.stream.Close()
}

package audio

import (
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"
)

const (
	beepSampleRate = 44100
	// fadeFraction of the beep is faded in and out to avoid clicks.
	fadeFraction = 0.1
)

// Beeper plays short feedback tones.
type Beeper interface {
	Beep(frequencyHz, durationMs int) error
}

// GenerateBeep synthesizes a sine tone as 16-bit PCM with a short fade
// in and out.
func GenerateBeep(frequencyHz, durationMs, sampleRate int) []int16 {
	n := sampleRate * durationMs / 1000
	if n <= 0 {
		return nil
	}
	out := make([]int16, n)
	fade := int(float64(n) * fadeFraction)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		v := math.Sin(2 * math.Pi * float64(frequencyHz) * t)
		if fade > 0 {
			if i < fade {
				v *= float64(i) / float64(fade)
			} else if i >= n-fade {
				v *= float64(n-1-i) / float64(fade)
			}
		}
		out[i] = int16(v * amplitudeMax)
	}
	return out
}

// PortAudioBeeper plays beeps on the default output device.
type PortAudioBeeper struct{}

// Beep synthesizes and plays a tone, blocking until playback finishes.
func (PortAudioBeeper) Beep(frequencyHz, durationMs int) error {
	samples := GenerateBeep(frequencyHz, durationMs, beepSampleRate)
	if len(samples) == 0 {
		return nil
	}
	out := make([]int16, 1024)
	stream, err := portaudio.OpenDefaultStream(0, 1, beepSampleRate, len(out), out)
	if err != nil {
		return fmt.Errorf("open playback stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start playback stream: %w", err)
	}
	defer stream.Stop()

	for off := 0; off < len(samples); off += len(out) {
		n := copy(out, samples[off:])
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("write playback stream: %w", err)
		}
	}
	return nil
}

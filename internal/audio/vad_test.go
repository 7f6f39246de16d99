package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sineFrame(freq, amp float64, n, sampleRate int) []int16 {
	frame := make([]int16, n)
	for i := range frame {
		t := float64(i) / float64(sampleRate)
		frame[i] = int16(amp * math.Sin(2*math.Pi*freq*t))
	}
	return frame
}

func noiseFrame(amp, n int) []int16 {
	frame := make([]int16, n)
	for i := range frame {
		frame[i] = int16(amp * ((i % 7) - 3))
	}
	return frame
}

func TestFluxRisesOnOnset(t *testing.T) {
	vad := NewVAD(256)

	baseline := vad.Flux(noiseFrame(5, 256))
	assert.Greater(t, baseline, 0.0)

	onset := vad.Flux(sineFrame(440, 8000, 256, 16000))
	assert.GreaterOrEqual(t, onset, baseline*onsetRatio)
}

func TestFluxCollapsesOnSilence(t *testing.T) {
	vad := NewVAD(256)
	vad.Flux(noiseFrame(5, 256))
	speech := vad.Flux(sineFrame(440, 8000, 256, 16000))

	// Only rising magnitudes count, so going quiet yields near-zero flux.
	silence := vad.Flux(make([]int16, 256))
	assert.LessOrEqual(t, silence*onsetRatio, speech)
}

func TestFluxAdaptsToFrameSize(t *testing.T) {
	vad := NewVAD(256)
	vad.Flux(make([]int16, 256))
	assert.NotPanics(t, func() {
		vad.Flux(make([]int16, 128))
	})
}

func TestEnergy(t *testing.T) {
	assert.Zero(t, Energy(nil))
	assert.Zero(t, Energy(make([]int16, 64)))

	full := make([]int16, 64)
	for i := range full {
		full[i] = math.MaxInt16
	}
	assert.InDelta(t, 1.0, Energy(full), 0.001)

	quiet := noiseFrame(5, 64)
	assert.Less(t, Energy(quiet), DefaultEnergyThreshold)
}

func TestEnergyDetectorTracksSilence(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	d := NewEnergyDetector(0)
	d.now = func() time.Time { return now }

	assert.False(t, d.SpeechDetected())
	assert.Zero(t, d.SilenceDuration())

	assert.True(t, d.Detect(sineFrame(440, 8000, 64, 16000)))
	assert.True(t, d.SpeechDetected())

	now = now.Add(300 * time.Millisecond)
	assert.False(t, d.Detect(make([]int16, 64)))
	assert.Equal(t, 300*time.Millisecond, d.SilenceDuration())

	// Speech state survives quiet frames until reset
	assert.True(t, d.SpeechDetected())
	d.Reset()
	assert.False(t, d.SpeechDetected())
	assert.Zero(t, d.SilenceDuration())
}

func TestRingBufferKeepsLatest(t *testing.T) {
	r := newRingBuffer(4)
	assert.Empty(t, r.Read())

	r.Add([]int16{1, 2})
	assert.Equal(t, []int16{1, 2}, r.Read())

	r.Add([]int16{3, 4, 5, 6})
	assert.Equal(t, []int16{3, 4, 5, 6}, r.Read())

	r.Clear()
	assert.Empty(t, r.Read())
}

func TestGenerateBeep(t *testing.T) {
	samples := GenerateBeep(800, 100, beepSampleRate)
	assert.Len(t, samples, beepSampleRate/10)

	// Faded edges stay small, the middle reaches full swing.
	assert.Less(t, math.Abs(float64(samples[1])), 1000.0)
	var peak float64
	for _, s := range samples {
		if v := math.Abs(float64(s)); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 30000.0)

	assert.Empty(t, GenerateBeep(800, 0, beepSampleRate))
}

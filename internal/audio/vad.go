// Package audio captures microphone input and segments it into
// utterances using spectral-flux voice activity detection.
package audio

import (
	"math"
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// amplitudeMax is the largest magnitude of a 16-bit PCM sample.
const amplitudeMax = 32767.0

// DefaultEnergyThreshold is the normalized RMS level above which a frame
// counts as speech.
const DefaultEnergyThreshold = 0.01

// VAD computes the spectral flux of successive audio frames. Flux rises
// sharply at a speech onset and collapses when the signal goes steady or
// silent, which is what the listener's onset and end-of-utterance
// detection keys off.
type VAD struct {
	coeffs []float64
	prev   []float64
}

// NewVAD creates a detector for frames of frameSize samples.
func NewVAD(frameSize int) *VAD {
	v := &VAD{}
	v.resize(frameSize)
	return v
}

func (v *VAD) resize(frameSize int) {
	v.coeffs = window.Hamming(frameSize)
	v.prev = make([]float64, frameSize/2+1)
}

// Flux returns the half-wave rectified spectral flux of the frame
// relative to the previous one. Only rising magnitudes contribute, so a
// steady or decaying signal yields a flux near zero.
func (v *VAD) Flux(frame []int16) float64 {
	if len(frame) != len(v.coeffs) {
		v.resize(len(frame))
	}
	input := make([]float64, len(frame))
	for i, s := range frame {
		input[i] = float64(s) / amplitudeMax * v.coeffs[i]
	}
	spectrum := fft.FFTReal(input)

	var flux float64
	for i := range v.prev {
		mag := cmplx.Abs(spectrum[i])
		if d := mag - v.prev[i]; d > 0 {
			flux += d * d
		}
		v.prev[i] = mag
	}
	return math.Sqrt(flux)
}

// Energy returns the RMS level of a frame normalized to [0, 1].
func Energy(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum/float64(len(frame))) / amplitudeMax
}

// EnergyDetector tracks whether speech has been heard and how long the
// signal has been below the energy threshold since.
type EnergyDetector struct {
	threshold      float64
	speechDetected bool
	lastSpeech     time.Time
	now            func() time.Time
}

// NewEnergyDetector creates a detector. A non-positive threshold falls
// back to DefaultEnergyThreshold.
func NewEnergyDetector(threshold float64) *EnergyDetector {
	if threshold <= 0 {
		threshold = DefaultEnergyThreshold
	}
	return &EnergyDetector{threshold: threshold, now: time.Now}
}

// Detect reports whether the frame contains speech and updates the
// detector's silence tracking.
func (d *EnergyDetector) Detect(frame []int16) bool {
	if Energy(frame) > d.threshold {
		d.speechDetected = true
		d.lastSpeech = d.now()
		return true
	}
	return false
}

// SpeechDetected reports whether any frame has contained speech since
// the last Reset.
func (d *EnergyDetector) SpeechDetected() bool {
	return d.speechDetected
}

// SilenceDuration returns the time elapsed since the last speech frame,
// or zero when no speech has been heard yet.
func (d *EnergyDetector) SilenceDuration() time.Duration {
	if d.lastSpeech.IsZero() {
		return 0
	}
	return d.now().Sub(d.lastSpeech)
}

// Reset clears the speech state for a new capture.
func (d *EnergyDetector) Reset() {
	d.speechDetected = false
	d.lastSpeech = time.Time{}
}

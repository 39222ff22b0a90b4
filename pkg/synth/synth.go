// Package synth provides stateless waveform primitives: tones, frequency
// sweeps, and filtered noise. All generators are pure functions of their
// inputs (and an injected random source for noise), producing float64
// sample buffers in the -1..1 range at a fixed sample rate.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
)

// fadeDuration is the envelope ramp applied to sweeps to avoid clicks.
const fadeDuration = 0.05 // seconds

// Synth generates waveform primitives at a fixed sample rate.
type Synth struct {
	rate int
}

// New creates a synthesizer producing samples at sampleRate Hz.
func New(sampleRate int) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("synth sample rate %d: %w", sampleRate, engine.ErrInvalidSampleRate)
	}
	return &Synth{rate: sampleRate}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (s *Synth) SampleRate() int {
	return s.rate
}

func (s *Synth) samples(duration float64) (int, error) {
	if duration <= 0 {
		return 0, fmt.Errorf("duration %g: %w", duration, engine.ErrInvalidDuration)
	}
	return int(math.Round(float64(s.rate) * duration)), nil
}

// Tone generates a sine wave at the given frequency and amplitude.
func (s *Synth) Tone(frequency, duration, amplitude float64) ([]float64, error) {
	count, err := s.samples(duration)
	if err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}

	out := make([]float64, count)
	for i := range out {
		t := float64(i) / float64(s.rate)
		out[i] = amplitude * math.Sin(2*math.Pi*frequency*t)
	}
	return out, nil
}

// Sweep generates a linear frequency sweep from startFreq to endFreq using
// phase accumulation, with short fade-in/out ramps to avoid clicks.
func (s *Synth) Sweep(startFreq, endFreq, duration, amplitude float64) ([]float64, error) {
	count, err := s.samples(duration)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	out := make([]float64, count)
	var phase float64
	for i := range out {
		progress := float64(i) / float64(count)
		freq := startFreq + (endFreq-startFreq)*progress
		phase += 2 * math.Pi * freq / float64(s.rate)
		out[i] = amplitude * math.Sin(phase)
	}

	applyFades(out, int(fadeDuration*float64(s.rate)))
	return out, nil
}

// Noise generates Gaussian noise low-passed with a moving average whose
// window is derived from highFreq (larger cutoff, smaller window). This is
// the raw rumble primitive; context-aware shaping lives in
// engine.NoiseModulator.
func (s *Synth) Noise(rng *rand.Rand, duration, amplitude, highFreq float64) ([]float64, error) {
	count, err := s.samples(duration)
	if err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = rng.NormFloat64() * amplitude
	}

	if highFreq > 0 {
		window := int(float64(s.rate) / highFreq)
		if window > 1 {
			smoothBox(out, window)
		}
	}
	return out, nil
}

// Silence generates a buffer of zero samples.
func (s *Synth) Silence(duration float64) ([]float64, error) {
	count, err := s.samples(duration)
	if err != nil {
		return nil, fmt.Errorf("silence: %w", err)
	}
	return make([]float64, count), nil
}

// applyFades ramps the first and last fadeSamples linearly to zero at the
// buffer edges.
func applyFades(buf []float64, fadeSamples int) {
	if fadeSamples <= 0 {
		return
	}
	if fadeSamples*2 > len(buf) {
		fadeSamples = len(buf) / 2
	}
	for i := 0; i < fadeSamples; i++ {
		gain := float64(i) / float64(fadeSamples)
		buf[i] *= gain
		buf[len(buf)-1-i] *= gain
	}
}

// smoothBox applies a centered box filter of the given window in place,
// zero-padded at the edges.
func smoothBox(buf []float64, window int) {
	src := make([]float64, len(buf))
	copy(src, buf)
	half := window / 2
	for i := range buf {
		start := i - half
		var sum float64
		for j := start; j < start+window; j++ {
			if j >= 0 && j < len(src) {
				sum += src[j]
			}
		}
		buf[i] = sum / float64(window)
	}
}

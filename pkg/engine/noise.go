package engine

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// kmhToMS converts km/h to m/s (1 km/h = 1000m/3600s).
	kmhToMS = 3.6

	// wheelCircumference in meters, fixed for the simulated stock.
	wheelCircumference = 0.8
)

// NoiseModulator generates amplitude- and spectrum-shaped noise adapted to
// the journey context via an internal ParameterLearner.
type NoiseModulator struct {
	sampleRate int
	learner    *ParameterLearner
	rng        *rand.Rand
}

// NewNoiseModulator creates a modulator producing samples at sampleRate Hz.
func NewNoiseModulator(sampleRate int, rng *rand.Rand) (*NoiseModulator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("noise modulator sample rate %d: %w", sampleRate, ErrInvalidSampleRate)
	}
	return &NoiseModulator{
		sampleRate: sampleRate,
		learner:    NewParameterLearner(0, rng),
		rng:        rng,
	}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (n *NoiseModulator) SampleRate() int {
	return n.sampleRate
}

// Noise produces round(sampleRate*duration) samples of zero-mean Gaussian
// noise whose working amplitude is the learned amplitude factor (clipped
// to [0.8, 1.5]) times baseAmplitude. A non-nil context adds spectral
// shaping: extra high-frequency content on worn track, moving-average
// damping in rain, and a low-amplitude sinusoid at the wheel rotation
// frequency while moving.
func (n *NoiseModulator) Noise(duration, baseAmplitude float64, ctx *JourneyContext) ([]float64, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("noise duration %g: %w", duration, ErrInvalidDuration)
	}

	samples := int(math.Round(float64(n.sampleRate) * duration))

	if ctx != nil {
		n.learner.Learn("amplitude", baseAmplitude)
		n.learner.Learn("speed", ctx.Speed)
	}

	factor := clip(n.learner.Predict("amplitude", ctx), 0.8, 1.5)
	amplitude := factor * baseAmplitude

	out := make([]float64, samples)
	for i := range out {
		out[i] = n.rng.NormFloat64() * amplitude
	}

	if ctx != nil {
		n.shapeSpectrum(out, ctx)
		n.addWheelRotation(out, ctx)
	}

	return out, nil
}

// shapeSpectrum applies context-driven spectral coloring in place (except
// for the rain filter, which rewrites the slice contents).
func (n *NoiseModulator) shapeSpectrum(out []float64, ctx *JourneyContext) {
	// Worn track raises the high-frequency content.
	if ctx.TrackWear > 0.7 {
		hfAmp := 0.05 * ctx.TrackWear
		for i := range out {
			out[i] += n.rng.NormFloat64() * hfAmp
		}
	}

	// Rain damps high frequencies.
	if ctx.Weather == WeatherRain {
		window := int(math.Round(float64(n.sampleRate) / 500.0))
		if window > 1 {
			smoothed := movingAverage(out, window)
			copy(out, smoothed)
		}
	}
}

// addWheelRotation mixes in the speed-dependent periodic component at the
// wheel rotation frequency.
func (n *NoiseModulator) addWheelRotation(out []float64, ctx *JourneyContext) {
	if ctx.Speed <= 0 {
		return
	}
	rotationFreq := (ctx.Speed / kmhToMS) / wheelCircumference
	for i := range out {
		t := float64(i) / float64(n.sampleRate)
		out[i] += 0.02 * math.Sin(2*math.Pi*rotationFreq*t)
	}
}

// movingAverage computes a centered moving average with zero padding at
// the edges, matching a same-length convolution with a box kernel.
func movingAverage(in []float64, window int) []float64 {
	out := make([]float64, len(in))
	half := window / 2
	for i := range in {
		start := i - half
		var sum float64
		for j := start; j < start+window; j++ {
			if j >= 0 && j < len(in) {
				sum += in[j]
			}
		}
		out[i] = sum / float64(window)
	}
	return out
}

package engine

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// frequencyMemorySize bounds the per-category history of modulated
// frequencies.
const frequencyMemorySize = 50

// Harmonic is one entry of a harmonic series: a frequency in Hz and its
// relative amplitude in [0, 1].
type Harmonic struct {
	Frequency float64
	Amplitude float64
}

// FrequencyModulator maps base frequencies and sound categories into
// context-shifted frequencies and harmonic series, keeping a rolling
// per-category frequency memory.
type FrequencyModulator struct {
	learner *ParameterLearner
	memory  map[string][]float64
	rng     *rand.Rand
}

// NewFrequencyModulator creates a modulator drawing from rng.
func NewFrequencyModulator(rng *rand.Rand) *FrequencyModulator {
	return &FrequencyModulator{
		learner: NewParameterLearner(0, rng),
		memory:  make(map[string][]float64),
		rng:     rng,
	}
}

// Modulate learns baseFreq under the category and returns it scaled by the
// predicted variation and a multiplicative context shift: temperature
// deviation from 20 C, motor-speed correlation for motor categories,
// wear-driven randomness past half wear, and age drift past half life.
// The result is appended to the category's frequency memory.
func (m *FrequencyModulator) Modulate(baseFreq float64, category string, ctx JourneyContext) float64 {
	key := category + "_freq"
	m.learner.Learn(key, baseFreq)
	variation := m.learner.Predict(key, &ctx)

	shift := 1.0

	// Metal expansion: +-5% per normalized 30 C deviation.
	tempDeviation := (ctx.Temperature - 20.0) / 30.0
	shift *= 1 + tempDeviation*0.05

	if strings.Contains(strings.ToLower(category), "motor") {
		shift *= clip(ctx.Speed/60.0, 0.3, 1.5)
	}

	if ctx.TrackWear > 0.5 {
		shift *= 1 + (ctx.TrackWear-0.5)*0.1*m.rng.NormFloat64()
	}

	if ctx.VehicleAge > 0.5 {
		shift *= 1 - (ctx.VehicleAge-0.5)*0.08
	}

	modulated := baseFreq * variation * shift

	buf := append(m.memory[category], modulated)
	if len(buf) > frequencyMemorySize {
		buf = buf[len(buf)-frequencyMemorySize:]
	}
	m.memory[category] = buf

	return modulated
}

// Memory returns a copy of the recent modulated frequencies for category,
// oldest first.
func (m *FrequencyModulator) Memory(category string) []float64 {
	buf := m.memory[category]
	out := make([]float64, len(buf))
	copy(out, buf)
	return out
}

// Harmonics builds the harmonic series for a fundamental frequency: five
// harmonics, or seven for vehicles past 0.7 age. Amplitudes follow a
// 1/i^1.5 decay, with even harmonics emphasized on worn track, upper
// harmonics damped by passenger load, and each amplitude passed through
// the learner before being clipped to [0, 1].
func (m *FrequencyModulator) Harmonics(fundamental float64, category string, ctx JourneyContext) []Harmonic {
	count := 5
	if ctx.VehicleAge > 0.7 {
		count = 7
	}

	harmonics := make([]Harmonic, 0, count)
	for i := 1; i <= count; i++ {
		amplitude := 1.0 / math.Pow(float64(i), 1.5)

		if ctx.TrackWear > 0.6 && i%2 == 0 {
			amplitude *= 1.3
		}
		if i > 3 {
			amplitude *= 1 - ctx.PassengerLoad*0.3
		}

		key := fmt.Sprintf("%s_harmonic_%d_amp", category, i)
		m.learner.Learn(key, amplitude)
		predicted := m.learner.Predict(key, &ctx) * amplitude

		harmonics = append(harmonics, Harmonic{
			Frequency: fundamental * float64(i),
			Amplitude: clip(predicted, 0.0, 1.0),
		})
	}
	return harmonics
}

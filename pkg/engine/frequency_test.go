package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulateReturnsPositiveFrequency(t *testing.T) {
	m := NewFrequencyModulator(newTestRand(1))
	ctx := DefaultContext()
	ctx.Speed = 50
	ctx.Temperature = 25
	ctx.TrackWear = 0.6

	freq := m.Modulate(440.0, "motor_whine", ctx)
	assert.Greater(t, freq, 0.0)
}

func TestModulateTemperaturePushesFrequencyUp(t *testing.T) {
	// Same seed on both modulators: the Gaussian draws are identical, so
	// any difference comes from the deterministic temperature term.
	run := func(temperature float64) float64 {
		m := NewFrequencyModulator(newTestRand(21))
		ctx := DefaultContext()
		ctx.Temperature = temperature
		// Wear and age at 0.5 keep the random and drift terms inactive.
		return m.Modulate(440.0, "rail_hum", ctx)
	}

	cold := run(20.0)
	hot := run(50.0)
	assert.Greater(t, hot, cold)
}

func TestModulateKeepsBoundedMemory(t *testing.T) {
	m := NewFrequencyModulator(newTestRand(2))
	ctx := DefaultContext()

	for i := 0; i < 120; i++ {
		m.Modulate(200.0+float64(i), "brake_hiss", ctx)
	}

	mem := m.Memory("brake_hiss")
	assert.Len(t, mem, frequencyMemorySize)
	// Newest entries survive eviction.
	last := m.Modulate(500.0, "brake_hiss", ctx)
	mem = m.Memory("brake_hiss")
	assert.Equal(t, last, mem[len(mem)-1])
}

func TestHarmonicsCountAndMultiples(t *testing.T) {
	m := NewFrequencyModulator(newTestRand(3))

	ctx := DefaultContext()
	ctx.VehicleAge = 0.5
	harmonics := m.Harmonics(440.0, "motor", ctx)
	require.Len(t, harmonics, 5)

	ctx.VehicleAge = 0.8
	harmonics = m.Harmonics(440.0, "motor", ctx)
	require.Len(t, harmonics, 7)

	for i, h := range harmonics {
		assert.Equal(t, 440.0*float64(i+1), h.Frequency)
		assert.GreaterOrEqual(t, h.Amplitude, 0.0)
		assert.LessOrEqual(t, h.Amplitude, 1.0)
	}
}

func TestHarmonicsAmplitudesDecayOverall(t *testing.T) {
	m := NewFrequencyModulator(newTestRand(4))
	ctx := DefaultContext()

	harmonics := m.Harmonics(110.0, "rumble", ctx)
	require.NotEmpty(t, harmonics)
	assert.GreaterOrEqual(t, harmonics[0].Amplitude, harmonics[len(harmonics)-1].Amplitude)
}

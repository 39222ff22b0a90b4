package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
)

func TestNewRejectsBadSampleRate(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, engine.ErrInvalidSampleRate)

	_, err = New(-1)
	assert.ErrorIs(t, err, engine.ErrInvalidSampleRate)
}

func TestToneLengthAndAmplitude(t *testing.T) {
	s, err := New(44100)
	require.NoError(t, err)

	tone, err := s.Tone(440.0, 0.5, 0.3)
	require.NoError(t, err)
	assert.Len(t, tone, 22050)

	for _, v := range tone {
		assert.LessOrEqual(t, math.Abs(v), 0.3+1e-12)
	}
}

func TestToneInvalidDuration(t *testing.T) {
	s, err := New(44100)
	require.NoError(t, err)

	_, err = s.Tone(440.0, 0, 0.3)
	assert.ErrorIs(t, err, engine.ErrInvalidDuration)

	_, err = s.Sweep(100, 200, -2, 0.3)
	assert.ErrorIs(t, err, engine.ErrInvalidDuration)
}

func TestSweepFadesToZeroAtEdges(t *testing.T) {
	s, err := New(44100)
	require.NoError(t, err)

	sweep, err := s.Sweep(800, 1200, 1.0, 0.4)
	require.NoError(t, err)
	assert.Len(t, sweep, 44100)

	assert.Equal(t, 0.0, sweep[0])
	// End of the fade-out ramp is near silent.
	assert.Less(t, math.Abs(sweep[len(sweep)-1]), 0.01)

	// Mid-buffer the sweep carries real energy.
	var peak float64
	for _, v := range sweep[20000:24000] {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	assert.Greater(t, peak, 0.2)
}

func TestNoiseSmoothingReducesVariance(t *testing.T) {
	s, err := New(44100)
	require.NoError(t, err)

	variance := func(buf []float64) float64 {
		var mean float64
		for _, v := range buf {
			mean += v
		}
		mean /= float64(len(buf))
		var sq float64
		for _, v := range buf {
			d := v - mean
			sq += d * d
		}
		return sq / float64(len(buf))
	}

	raw, err := s.Noise(rand.New(rand.NewSource(9)), 1.0, 0.2, 0)
	require.NoError(t, err)
	filtered, err := s.Noise(rand.New(rand.NewSource(9)), 1.0, 0.2, 150)
	require.NoError(t, err)

	assert.Less(t, variance(filtered), variance(raw))
}

func TestMixAndConcat(t *testing.T) {
	a := []float64{1, 1, 1}
	b := []float64{0.5, 0.5}

	mixed := Mix(a, b)
	assert.Equal(t, []float64{1.5, 1.5, 1}, mixed)

	joined := Concat([]float64{1}, []float64{2, 3})
	assert.Equal(t, []float64{1, 2, 3}, joined)
}

func TestNormalize(t *testing.T) {
	buf := []float64{0.1, -0.5, 0.25}
	Normalize(buf, 1.0)
	assert.InDelta(t, 1.0, math.Abs(buf[1]), 1e-12)

	silent := []float64{0, 0}
	Normalize(silent, 1.0)
	assert.Equal(t, []float64{0, 0}, silent)
}

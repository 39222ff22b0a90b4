package engine

import (
	"math"
	"math/rand"
)

const (
	// DefaultMemorySize is the per-parameter observation history capacity.
	DefaultMemorySize = 100

	// learningRate is the exponential smoothing factor blending fresh
	// sample statistics into the stored model.
	learningRate = 0.1

	// minObservations is the history length required before the model
	// statistics are recomputed.
	minObservations = 10

	// unknownDefault is returned by Predict for a never-learned name.
	// Silent default rather than an error: callers treat it as a neutral
	// multiplier.
	unknownDefault = 1.0
)

// parameterModel holds the smoothed statistics learned for one named
// parameter.
type parameterModel struct {
	mean  float64
	std   float64
	trend float64 // rate of change per sample
}

// ParameterLearner maintains a bounded observation history and a smoothed
// statistical model (mean, std, trend) per named parameter, and samples
// context-adjusted predictions from that model.
type ParameterLearner struct {
	memorySize int
	history    map[string][]float64
	models     map[string]*parameterModel
	rng        *rand.Rand
}

// NewParameterLearner creates a learner drawing from rng. A memorySize
// of zero or less selects DefaultMemorySize.
func NewParameterLearner(memorySize int, rng *rand.Rand) *ParameterLearner {
	if memorySize <= 0 {
		memorySize = DefaultMemorySize
	}
	return &ParameterLearner{
		memorySize: memorySize,
		history:    make(map[string][]float64),
		models:     make(map[string]*parameterModel),
		rng:        rng,
	}
}

// Learn records an observed value for name. The first observation seeds
// the model; once more than minObservations values are buffered the
// sample mean and standard deviation are blended into the model with the
// learning rate, and the trend is recomputed from the buffer endpoints.
func (l *ParameterLearner) Learn(name string, value float64) {
	model, ok := l.models[name]
	if !ok {
		model = &parameterModel{mean: value, std: 0.1}
		l.models[name] = model
	}

	buf := append(l.history[name], value)
	if len(buf) > l.memorySize {
		buf = buf[len(buf)-l.memorySize:]
	}
	l.history[name] = buf

	if len(buf) > minObservations {
		mean, std := meanStd(buf)
		model.mean = (1-learningRate)*model.mean + learningRate*mean
		model.std = (1-learningRate)*model.std + learningRate*std
		model.trend = (buf[len(buf)-1] - buf[0]) / float64(len(buf))
	}
}

// Predict samples a value for name from the learned distribution, applies
// the trend, then biases the result by the supplied context. A nil context
// skips the context multipliers. Unknown names return a neutral 1.0.
// The result is always clipped to [0.0, 2.0].
func (l *ParameterLearner) Predict(name string, ctx *JourneyContext) float64 {
	model, ok := l.models[name]
	if !ok {
		return unknownDefault
	}

	value := l.rng.NormFloat64()*model.std + model.mean
	value += model.trend

	if ctx != nil {
		// Higher speeds widen variation, crawling narrows it.
		if ctx.Speed > 60 {
			value *= 1.1
		} else if ctx.Speed < 20 {
			value *= 0.9
		}
		value *= 1 + ctx.TrackWear*0.3
		value *= 1 + ctx.VehicleAge*0.2
	}

	return clip(value, 0.0, 2.0)
}

// Model reports the learned statistics for name. ok is false if the name
// has never been observed.
func (l *ParameterLearner) Model(name string) (mean, std, trend float64, ok bool) {
	model, found := l.models[name]
	if !found {
		return 0, 0, 0, false
	}
	return model.mean, model.std, model.trend, true
}

// meanStd computes the sample mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

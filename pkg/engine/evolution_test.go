package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrakingHeatsBrakes(t *testing.T) {
	tracker := NewEvolutionTracker()
	ctx := DefaultContext()
	ctx.Speed = 30
	ctx.Acceleration = -2.0

	tracker.Update(10.0, ctx)

	state := tracker.State()
	assert.Greater(t, state.BrakeTemperature, 20.0)
	assert.LessOrEqual(t, state.BrakeTemperature, 300.0)
	assert.Equal(t, 10.0, tracker.Elapsed())
}

func TestCoastingCoolsBrakesTowardAmbient(t *testing.T) {
	tracker := NewEvolutionTracker()
	ctx := DefaultContext()
	ctx.Acceleration = -3.0
	tracker.Update(8.0, ctx)
	hot := tracker.State().BrakeTemperature

	ctx.Acceleration = 0.0
	tracker.Update(2.0, ctx)

	cooled := tracker.State().BrakeTemperature
	assert.Less(t, cooled, hot)
	assert.GreaterOrEqual(t, cooled, ctx.Temperature)
}

func TestEvolutionStateStaysBounded(t *testing.T) {
	tracker := NewEvolutionTracker()
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 2000; i++ {
		ctx := JourneyContext{
			Speed:        rng.Float64() * 500,
			Acceleration: (rng.Float64() - 0.5) * 40,
			Temperature:  rng.Float64()*60 - 20,
			Weather:      WeatherNormal,
		}
		dt := rng.Float64() * 30

		tracker.Update(dt, ctx)

		state := tracker.State()
		assert.GreaterOrEqual(t, state.BrakeTemperature, ctx.Temperature)
		assert.LessOrEqual(t, state.BrakeTemperature, 300.0)
		assert.GreaterOrEqual(t, state.MotorTemperature, ctx.Temperature)
		assert.LessOrEqual(t, state.MotorTemperature, 120.0)
		assert.GreaterOrEqual(t, state.BearingWear, 0.0)
		assert.LessOrEqual(t, state.BearingWear, 1.0)
		assert.GreaterOrEqual(t, state.ContactFatigue, 0.0)
		assert.LessOrEqual(t, state.ContactFatigue, 1.0)
	}
}

func TestWearAccumulatesMonotonically(t *testing.T) {
	tracker := NewEvolutionTracker()
	ctx := DefaultContext()
	ctx.Speed = 80
	ctx.Acceleration = 1.2

	var lastWear, lastFatigue float64
	for i := 0; i < 100; i++ {
		tracker.Update(1.0, ctx)
		state := tracker.State()
		assert.GreaterOrEqual(t, state.BearingWear, lastWear)
		assert.GreaterOrEqual(t, state.ContactFatigue, lastFatigue)
		lastWear = state.BearingWear
		lastFatigue = state.ContactFatigue
	}
}

func TestTemperatureModulationBaseline(t *testing.T) {
	tracker := NewEvolutionTracker()
	// Cold brakes and baseline motor give a neutral factor.
	assert.InDelta(t, 1.0, tracker.TemperatureModulation(), 1e-9)

	ctx := DefaultContext()
	ctx.Acceleration = -2.0
	tracker.Update(20.0, ctx)
	assert.Greater(t, tracker.TemperatureModulation(), 1.0)
}

func TestWearEffectsProportions(t *testing.T) {
	tracker := NewEvolutionTracker()
	ctx := DefaultContext()
	ctx.Speed = 100
	ctx.Acceleration = 2.0

	for i := 0; i < 50; i++ {
		tracker.Update(10.0, ctx)
	}

	state := tracker.State()
	effects := tracker.WearEffects()
	assert.InDelta(t, state.BearingWear*0.5, effects.BearingNoise, 1e-9)
	assert.InDelta(t, state.ContactFatigue*0.3, effects.Roughness, 1e-9)
	assert.InDelta(t, (state.BearingWear+state.ContactFatigue)*0.4, effects.Vibration, 1e-9)
}

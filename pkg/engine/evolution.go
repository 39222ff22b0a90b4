package engine

import (
	"math"
)

// EvolutionState holds the accumulated thermal and wear quantities of one
// vehicle. Temperatures cool toward their baselines; wear and fatigue only
// grow.
type EvolutionState struct {
	BrakeTemperature float64 // Celsius, bounded [ambient, 300]
	MotorTemperature float64 // Celsius, bounded [ambient, 120]
	BearingWear      float64 // 0 to 1, non-decreasing
	ContactFatigue   float64 // 0 to 1, non-decreasing
}

// EvolutionTracker integrates physical state over elapsed journey time and
// exposes derived sound modulation multipliers. One instance per vehicle.
type EvolutionTracker struct {
	state   EvolutionState
	elapsed float64
}

// WearEffects are the sound modulation factors derived from accumulated
// wear.
type WearEffects struct {
	BearingNoise float64
	Roughness    float64
	Vibration    float64
}

// NewEvolutionTracker starts a vehicle with cold brakes and a motor at its
// 40 C operating baseline.
func NewEvolutionTracker() *EvolutionTracker {
	return &EvolutionTracker{
		state: EvolutionState{
			BrakeTemperature: 20.0,
			MotorTemperature: 40.0,
		},
	}
}

// Update advances the physical state by dt seconds under the given
// context. Braking heats the brakes at 15 C/s, otherwise they cool toward
// ambient; the motor heats with |acceleration|*speed and cools toward its
// 40 C baseline; bearing wear tracks distance and contact fatigue tracks
// acceleration magnitude. All fields are clipped to their bounds after the
// step, so arbitrarily large dt or context values cannot escape them.
func (t *EvolutionTracker) Update(dt float64, ctx JourneyContext) {
	t.elapsed += dt
	s := &t.state

	if ctx.Acceleration < 0 {
		s.BrakeTemperature += dt * 15.0
	} else {
		s.BrakeTemperature -= (s.BrakeTemperature - ctx.Temperature) * 0.1 * dt
	}

	s.MotorTemperature += math.Abs(ctx.Acceleration) * ctx.Speed * dt * 0.5
	s.MotorTemperature -= (s.MotorTemperature - 40.0) * 0.05 * dt

	s.BearingWear += ctx.Speed * dt * 0.0001
	s.ContactFatigue += math.Abs(ctx.Acceleration) * dt * 0.001

	s.BrakeTemperature = clip(s.BrakeTemperature, ctx.Temperature, 300.0)
	s.MotorTemperature = clip(s.MotorTemperature, ctx.Temperature, 120.0)
	s.BearingWear = clip(s.BearingWear, 0.0, 1.0)
	s.ContactFatigue = clip(s.ContactFatigue, 0.0, 1.0)
}

// State returns a copy of the current physical state.
func (t *EvolutionTracker) State() EvolutionState {
	return t.state
}

// Elapsed returns the total simulated time integrated so far, in seconds.
func (t *EvolutionTracker) Elapsed() float64 {
	return t.elapsed
}

// TemperatureModulation returns the sound modulation factor driven by
// brake and motor heating, 1.0 at baseline temperatures.
func (t *EvolutionTracker) TemperatureModulation() float64 {
	brakeFactor := 1 + (t.state.BrakeTemperature-20.0)/280.0*0.2
	motorFactor := 1 + (t.state.MotorTemperature-40.0)/80.0*0.15
	return (brakeFactor + motorFactor) / 2
}

// WearEffects returns the sound modulation factors driven by accumulated
// wear and fatigue.
func (t *EvolutionTracker) WearEffects() WearEffects {
	return WearEffects{
		BearingNoise: t.state.BearingWear * 0.5,
		Roughness:    t.state.ContactFatigue * 0.3,
		Vibration:    (t.state.BearingWear + t.state.ContactFatigue) * 0.4,
	}
}

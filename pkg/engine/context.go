// Package engine implements the context-aware adaptation core of the
// metro sound simulator: a statistical parameter learner, context-driven
// noise and frequency modulators, a physical-state evolution tracker, and
// a probabilistic event scheduler. All components are deterministic given
// an injected random source, and all assume a single logical thread of
// control per simulated vehicle.
package engine

// Weather describes the ambient weather condition of a journey.
type Weather string

const (
	// WeatherNormal is dry, temperate conditions
	WeatherNormal Weather = "normal"
	// WeatherRain dampens high frequencies (wet rails and tunnels)
	WeatherRain Weather = "rain"
	// WeatherCold is sub-zero operation
	WeatherCold Weather = "cold"
	// WeatherHot is high ambient temperature operation
	WeatherHot Weather = "hot"
)

// JourneyContext is a snapshot of the simulated vehicle and environment
// state. The scenario layer owns mutation between calls; the engine treats
// each value it receives as read-only.
type JourneyContext struct {
	JourneyTime   float64 // seconds since departure
	Speed         float64 // km/h, >= 0
	Acceleration  float64 // m/s^2, negative while braking
	Temperature   float64 // ambient temperature in Celsius
	TrackWear     float64 // 0.0 (new) to 1.0 (worn)
	VehicleAge    float64 // 0.0 (new) to 1.0 (old)
	PassengerLoad float64 // 0.0 (empty) to 1.0 (full)
	Weather       Weather
}

// DefaultContext returns a context for a mid-life vehicle at rest in
// temperate conditions.
func DefaultContext() JourneyContext {
	return JourneyContext{
		Temperature:   20.0,
		TrackWear:     0.5,
		VehicleAge:    0.5,
		PassengerLoad: 0.5,
		Weather:       WeatherNormal,
	}
}

// clip bounds v to [lo, hi].
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

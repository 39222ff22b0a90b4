package engine

import (
	"math/rand"
)

// EventType identifies a schedulable journey sound event.
type EventType string

const (
	// EventCurve is a curve passage with flange contact
	EventCurve EventType = "curve"
	// EventRailSwitch is a switch/crossing passage
	EventRailSwitch EventType = "rail_switch"
	// EventRailDefect is a rail joint or surface defect
	EventRailDefect EventType = "rail_defect"
	// EventWheelSqueal is wheel flange squeal
	EventWheelSqueal EventType = "wheel_squeal"
	// EventBrakeSqueal is brake pad squeal
	EventBrakeSqueal EventType = "brake_squeal"
)

// eventOrder fixes the trial iteration order. Earlier types are
// structurally favored because the first successful trial wins the call;
// kept deliberately (see the scheduler docs).
var eventOrder = []EventType{
	EventCurve,
	EventRailSwitch,
	EventRailDefect,
	EventWheelSqueal,
	EventBrakeSqueal,
}

// Base probabilities are authored in per-100-calls units and scaled by
// perCallScale before each Bernoulli trial.
var baseProbabilities = map[EventType]float64{
	EventCurve:       0.15,
	EventRailSwitch:  0.12,
	EventRailDefect:  0.10,
	EventWheelSqueal: 0.08,
	EventBrakeSqueal: 0.06,
}

const (
	eventHistorySize  = 100
	eventLookback     = 5.0 // seconds
	recentSuppression = 0.3
	perCallScale      = 0.01
)

type eventRecord struct {
	time float64
	kind EventType
}

// EventScheduler performs context-weighted probabilistic event selection
// with anti-clustering suppression over a bounded event history.
//
// Types are tried in a fixed order and the first successful trial wins the
// call, so earlier types are favored when several trials would succeed.
// That bias matches the reference behavior and is preserved as-is.
type EventScheduler struct {
	history []eventRecord
	rng     *rand.Rand
}

// NewEventScheduler creates a scheduler drawing from rng.
func NewEventScheduler(rng *rand.Rand) *EventScheduler {
	return &EventScheduler{rng: rng}
}

// Predict decides whether an event fires at the given journey time.
// Probabilities are first adjusted for the context (track wear raises
// defects, speed raises curves, vehicle age raises squeal), then any type
// seen within the last five seconds is suppressed to 30%. The fired event,
// if any, is recorded into the trimmed history.
func (s *EventScheduler) Predict(currentTime float64, ctx JourneyContext) (EventType, bool) {
	adjusted := make(map[EventType]float64, len(baseProbabilities))
	for kind, p := range baseProbabilities {
		adjusted[kind] = p
	}

	adjusted[EventRailDefect] *= 1 + ctx.TrackWear
	if ctx.Speed > 50 {
		adjusted[EventCurve] *= 1.5
	}
	adjusted[EventWheelSqueal] *= 1 + ctx.VehicleAge*0.5

	recent := s.recentEvents(currentTime)

	for _, kind := range eventOrder {
		p := adjusted[kind]
		if recent[kind] {
			p *= recentSuppression
		}
		if s.rng.Float64() < p*perCallScale {
			s.record(currentTime, kind)
			return kind, true
		}
	}
	return "", false
}

// recentEvents collects the event types seen within the lookback window.
func (s *EventScheduler) recentEvents(currentTime float64) map[EventType]bool {
	recent := make(map[EventType]bool)
	for _, rec := range s.history {
		if currentTime-rec.time < eventLookback {
			recent[rec.kind] = true
		}
	}
	return recent
}

func (s *EventScheduler) record(currentTime float64, kind EventType) {
	s.history = append(s.history, eventRecord{time: currentTime, kind: kind})
	if len(s.history) > eventHistorySize {
		s.history = s.history[len(s.history)-eventHistorySize:]
	}
}

// History returns the recorded (time, type) pairs, oldest first.
func (s *EventScheduler) History() []EventType {
	out := make([]EventType, len(s.history))
	for i, rec := range s.history {
		out[i] = rec.kind
	}
	return out
}

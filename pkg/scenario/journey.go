package scenario

import (
	"fmt"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
	"github.com/jeff-barlow-spady/metrosim/pkg/logger"
)

const (
	// cruiseSpeed is the target running speed between stations, km/h.
	cruiseSpeed = 70.0

	// accelRate and brakeRate in m/s^2.
	accelRate = 1.0
	brakeRate = -2.0

	// Station spacing bounds, seconds of cruise between stops.
	minStationGap = 40.0
	maxStationGap = 75.0
)

// Segment is one rendered slice of a journey, paired with the context and
// physical state snapshots at the moment it was produced.
type Segment struct {
	Time    float64 // journey time at segment start, seconds
	Label   string
	Event   engine.EventType // empty when the segment is not event-driven
	Samples []float64
	Context engine.JourneyContext
	State   engine.EvolutionState
}

// SegmentFunc consumes rendered segments in journey order. Returning an
// error aborts the journey.
type SegmentFunc func(Segment) error

// RunJourney simulates a journey of the given length, rendering segments
// and passing each to emit. The loop owns all context mutation: it ramps
// speed through acceleration and braking phases, integrates the evolution
// tracker, and consults the event scheduler while cruising. A receive on
// stop ends the journey early without error.
func (s *Simulator) RunJourney(minutes float64, emit SegmentFunc, stop <-chan struct{}) error {
	if minutes <= 0 {
		return fmt.Errorf("journey length %g minutes: %w", minutes, engine.ErrInvalidDuration)
	}
	total := minutes * 60.0

	logger.Info(logger.CategoryScenario, "Starting %.1f-minute journey (wear=%.2f age=%.2f weather=%s)",
		minutes, s.ctx.TrackWear, s.ctx.VehicleAge, s.ctx.Weather)

	// Depart: doors, then spin up to cruise speed.
	if err := s.emitPiece(emit, "doors", "", s.DoorClosing); err != nil {
		return err
	}
	if err := s.departure(emit); err != nil {
		return err
	}

	nextStation := s.ctx.JourneyTime + s.stationGap()

	for s.ctx.JourneyTime < total {
		select {
		case <-stop:
			logger.Info(logger.CategoryScenario, "Journey stopped at %.1fs", s.ctx.JourneyTime)
			return nil
		default:
		}

		if s.ctx.JourneyTime >= nextStation {
			if err := s.stationStop(emit); err != nil {
				return err
			}
			nextStation = s.ctx.JourneyTime + s.stationGap()
			continue
		}

		if err := s.cruiseTick(emit); err != nil {
			return err
		}
	}

	logger.Info(logger.CategoryScenario, "Journey complete at %.1fs: %v",
		s.ctx.JourneyTime, s.evolution.State())
	return nil
}

// departure accelerates from rest to cruise speed.
func (s *Simulator) departure(emit SegmentFunc) error {
	s.ctx.Acceleration = accelRate
	err := s.emitPiece(emit, "acceleration", "", func() ([]float64, error) {
		return s.Acceleration(3.0)
	})
	if err != nil {
		return err
	}
	s.ctx.Speed = cruiseSpeed
	s.ctx.Acceleration = 0
	return nil
}

// stationStop brakes to a halt, dwells, and departs again.
func (s *Simulator) stationStop(emit SegmentFunc) error {
	logger.Info(logger.CategoryScenario, "Approaching station at %.1fs", s.ctx.JourneyTime)

	s.ctx.Acceleration = brakeRate
	if err := s.emitPiece(emit, "station", "", s.StationArrival); err != nil {
		return err
	}
	s.ctx.Speed = 0

	return s.departure(emit)
}

// cruiseTick renders one cruising segment: an event sound if the
// scheduler fires, ambient rumble otherwise.
func (s *Simulator) cruiseTick(emit SegmentFunc) error {
	kind, fired := s.events.Predict(s.ctx.JourneyTime, s.ctx)
	if fired {
		logger.Debug(logger.CategoryScenario, "Event %q at %.1fs", kind, s.ctx.JourneyTime)
		return s.emitPiece(emit, string(kind), kind, func() ([]float64, error) {
			return s.EventSound(kind)
		})
	}

	duration := 3.0 + s.rng.Float64()*3.0
	return s.emitPiece(emit, "rumble", "", func() ([]float64, error) {
		return s.AmbientRumble(duration)
	})
}

// emitPiece renders one piece, advances journey time and physical state
// by its real length, and hands the segment to the consumer.
func (s *Simulator) emitPiece(emit SegmentFunc, label string, kind engine.EventType, render func() ([]float64, error)) error {
	start := s.ctx.JourneyTime

	samples, err := render()
	if err != nil {
		return err
	}

	dt := float64(len(samples)) / float64(s.synth.SampleRate())
	s.evolution.Update(dt, s.ctx)
	s.ctx.JourneyTime += dt

	return emit(Segment{
		Time:    start,
		Label:   label,
		Event:   kind,
		Samples: samples,
		Context: s.ctx,
		State:   s.evolution.State(),
	})
}

// stationGap picks the cruise time until the next stop.
func (s *Simulator) stationGap() float64 {
	return minStationGap + s.rng.Float64()*(maxStationGap-minStationGap)
}

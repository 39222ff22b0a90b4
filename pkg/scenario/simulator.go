// Package scenario simulates a metro journey: it owns the evolving
// JourneyContext, drives the adaptation engine, and folds the engine's
// modulation output into waveform primitives to render complete sound
// pieces (rumble, screeches, door sequences, station stops).
package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
	"github.com/jeff-barlow-spady/metrosim/pkg/logger"
	"github.com/jeff-barlow-spady/metrosim/pkg/synth"
)

// Simulator renders journey sound pieces. One instance per simulated
// vehicle; not safe for concurrent use.
type Simulator struct {
	synth     *synth.Synth
	noise     *engine.NoiseModulator
	freqs     *engine.FrequencyModulator
	evolution *engine.EvolutionTracker
	events    *engine.EventScheduler
	rng       *rand.Rand

	ctx engine.JourneyContext
}

// NewSimulator creates a simulator rendering at sampleRate Hz. The seed
// fixes every stochastic choice, so equal seeds reproduce identical
// journeys.
func NewSimulator(sampleRate int, seed int64) (*Simulator, error) {
	rng := rand.New(rand.NewSource(seed))

	syn, err := synth.New(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("scenario synth: %w", err)
	}
	noise, err := engine.NewNoiseModulator(sampleRate, rng)
	if err != nil {
		return nil, fmt.Errorf("scenario noise modulator: %w", err)
	}

	return &Simulator{
		synth:     syn,
		noise:     noise,
		freqs:     engine.NewFrequencyModulator(rng),
		evolution: engine.NewEvolutionTracker(),
		events:    engine.NewEventScheduler(rng),
		rng:       rng,
		ctx:       engine.DefaultContext(),
	}, nil
}

// Context returns the current journey context snapshot.
func (s *Simulator) Context() engine.JourneyContext {
	return s.ctx
}

// SetContext replaces the journey context. The scenario layer owns
// context mutation; the engine only reads it.
func (s *Simulator) SetContext(ctx engine.JourneyContext) {
	s.ctx = ctx
}

// Evolution exposes the physical-state tracker for status displays.
func (s *Simulator) Evolution() *engine.EvolutionTracker {
	return s.evolution
}

// SampleRate returns the rendering sample rate in Hz.
func (s *Simulator) SampleRate() int {
	return s.synth.SampleRate()
}

// AmbientRumble renders track rumble with an 8 Hz vibration that deepens
// as bearings wear, scaled by the thermal modulation factor.
func (s *Simulator) AmbientRumble(duration float64) ([]float64, error) {
	rumble, err := s.noise.Noise(duration, 0.15, &s.ctx)
	if err != nil {
		return nil, fmt.Errorf("ambient rumble: %w", err)
	}

	wear := s.evolution.WearEffects()
	vibAmp := 0.05 + wear.Vibration*0.1
	rate := float64(s.synth.SampleRate())
	for i := range rumble {
		t := float64(i) / rate
		rumble[i] *= 1 + vibAmp*math.Sin(2*math.Pi*8.0*t)
	}

	return synth.Gain(rumble, s.evolution.TemperatureModulation()), nil
}

// TurnScreech renders a sharp-curve screech: two rising metal-on-metal
// sweeps whose start frequencies come from the frequency modulator, over
// a bed of rumble.
func (s *Simulator) TurnScreech() ([]float64, error) {
	duration := 1.5 + s.rng.Float64()*1.5

	f1 := s.freqs.Modulate(800.0, "wheel_squeal", s.ctx)
	f2 := s.freqs.Modulate(600.0, "wheel_squeal", s.ctx)

	screech1, err := s.synth.Sweep(f1, f1*1.5, duration*0.7, 0.3)
	if err != nil {
		return nil, fmt.Errorf("turn screech: %w", err)
	}
	screech2, err := s.synth.Sweep(f2, f2*1.5, duration*0.5, 0.2)
	if err != nil {
		return nil, fmt.Errorf("turn screech: %w", err)
	}

	rumble, err := s.noise.Noise(duration*0.7, 0.1, &s.ctx)
	if err != nil {
		return nil, fmt.Errorf("turn screech: %w", err)
	}

	return synth.Mix(screech1, screech2, rumble), nil
}

// DoorClosing renders the full door sequence: three warning beeps, the
// pneumatic hiss, and the closing thunk.
func (s *Simulator) DoorClosing() ([]float64, error) {
	beep, err := s.synth.Tone(800.0, 0.2, 0.25)
	if err != nil {
		return nil, fmt.Errorf("door closing: %w", err)
	}
	gap, err := s.synth.Silence(0.15)
	if err != nil {
		return nil, fmt.Errorf("door closing: %w", err)
	}
	pause, err := s.synth.Silence(0.3)
	if err != nil {
		return nil, fmt.Errorf("door closing: %w", err)
	}
	hiss, err := s.synth.Noise(s.rng, 1.2, 0.2, 8000)
	if err != nil {
		return nil, fmt.Errorf("door closing: %w", err)
	}
	thunk, err := s.synth.Tone(150.0, 0.15, 0.4)
	if err != nil {
		return nil, fmt.Errorf("door closing: %w", err)
	}

	return synth.Concat(beep, gap, beep, gap, beep, pause, hiss, thunk), nil
}

// Acceleration renders the traction motor spinning up: rumble, a rising
// sweep, and the motor whine's harmonic series from the frequency
// modulator.
func (s *Simulator) Acceleration(duration float64) ([]float64, error) {
	rumble, err := s.noise.Noise(duration, 0.12, &s.ctx)
	if err != nil {
		return nil, fmt.Errorf("acceleration: %w", err)
	}
	sweep, err := s.synth.Sweep(60.0, 120.0, duration, 0.08)
	if err != nil {
		return nil, fmt.Errorf("acceleration: %w", err)
	}

	whine := s.freqs.Modulate(220.0, "motor_whine", s.ctx)
	layers := [][]float64{rumble, sweep}
	for _, h := range s.freqs.Harmonics(whine, "motor_whine", s.ctx) {
		tone, err := s.synth.Tone(h.Frequency, duration, h.Amplitude*0.03)
		if err != nil {
			return nil, fmt.Errorf("acceleration: %w", err)
		}
		layers = append(layers, tone)
	}

	return synth.Mix(layers...), nil
}

// Deceleration renders regenerative braking: rumble, a falling sweep, and
// a brake hiss that grows with brake temperature.
func (s *Simulator) Deceleration(duration float64) ([]float64, error) {
	rumble, err := s.noise.Noise(duration, 0.12, &s.ctx)
	if err != nil {
		return nil, fmt.Errorf("deceleration: %w", err)
	}
	sweep, err := s.synth.Sweep(120.0, 60.0, duration, 0.08)
	if err != nil {
		return nil, fmt.Errorf("deceleration: %w", err)
	}

	hissAmp := 0.05 * s.evolution.TemperatureModulation()
	hiss, err := s.synth.Noise(s.rng, duration, hissAmp, 4000)
	if err != nil {
		return nil, fmt.Errorf("deceleration: %w", err)
	}

	return synth.Mix(rumble, sweep, hiss), nil
}

// ElectricIdle renders the stationary hum: auxiliary systems at 120 Hz,
// the air compressor at 180 Hz, and inverter standby noise.
func (s *Simulator) ElectricIdle(duration float64) ([]float64, error) {
	aux, err := s.synth.Tone(120.0, duration, 0.06)
	if err != nil {
		return nil, fmt.Errorf("electric idle: %w", err)
	}
	compressor, err := s.synth.Tone(180.0, duration, 0.04)
	if err != nil {
		return nil, fmt.Errorf("electric idle: %w", err)
	}
	standby, err := s.synth.Noise(s.rng, duration, 0.02, 2000)
	if err != nil {
		return nil, fmt.Errorf("electric idle: %w", err)
	}

	return synth.Mix(aux, compressor, standby), nil
}

// StationArrival renders the full stop sequence: deceleration, a pause at
// the platform, idle hum, and the door closing sequence.
func (s *Simulator) StationArrival() ([]float64, error) {
	decel, err := s.Deceleration(2.5)
	if err != nil {
		return nil, fmt.Errorf("station arrival: %w", err)
	}
	pause, err := s.synth.Silence(0.5)
	if err != nil {
		return nil, fmt.Errorf("station arrival: %w", err)
	}
	idle, err := s.ElectricIdle(1.5)
	if err != nil {
		return nil, fmt.Errorf("station arrival: %w", err)
	}
	doors, err := s.DoorClosing()
	if err != nil {
		return nil, fmt.Errorf("station arrival: %w", err)
	}

	return synth.Concat(decel, pause, idle, doors), nil
}

// EventSound renders the sound piece for a scheduled event type.
func (s *Simulator) EventSound(kind engine.EventType) ([]float64, error) {
	switch kind {
	case engine.EventCurve, engine.EventWheelSqueal:
		return s.TurnScreech()

	case engine.EventRailSwitch:
		// Double clack over the frog and the closure rail.
		clack, err := s.synth.Noise(s.rng, 0.08, 0.3, 3000)
		if err != nil {
			return nil, fmt.Errorf("rail switch: %w", err)
		}
		gap, err := s.synth.Silence(0.12)
		if err != nil {
			return nil, fmt.Errorf("rail switch: %w", err)
		}
		clack2, err := s.synth.Noise(s.rng, 0.08, 0.25, 3000)
		if err != nil {
			return nil, fmt.Errorf("rail switch: %w", err)
		}
		return synth.Concat(clack, gap, clack2), nil

	case engine.EventRailDefect:
		thud, err := s.synth.Tone(80.0, 0.1, 0.35)
		if err != nil {
			return nil, fmt.Errorf("rail defect: %w", err)
		}
		burst, err := s.synth.Noise(s.rng, 0.1, 0.2, 1500)
		if err != nil {
			return nil, fmt.Errorf("rail defect: %w", err)
		}
		return synth.Mix(thud, burst), nil

	case engine.EventBrakeSqueal:
		freq := s.freqs.Modulate(1200.0, "brake_squeal", s.ctx)
		return s.synth.Sweep(freq, freq*0.7, 1.0, 0.2)

	default:
		logger.Warning(logger.CategoryScenario, "No sound mapped for event type %q", kind)
		return s.AmbientRumble(1.0)
	}
}

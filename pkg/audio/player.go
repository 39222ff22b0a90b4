// Package audio provides playback and WAV export for rendered sample buffers
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
	"github.com/jeff-barlow-spady/metrosim/pkg/logger"
)

// framesPerBuffer is the portaudio write chunk size.
const framesPerBuffer = 1024

// Player plays mono float64 sample buffers through the default output
// device. When no device is available it degrades to silent mode and
// sleeps for each buffer's duration instead, so scenario pacing still
// works on headless machines.
type Player struct {
	sampleRate int
	silent     bool

	// Thread safety
	mu sync.Mutex

	initialized bool
}

// NewPlayer creates a player for the given sample rate. Device
// initialization failure is not an error; the player switches to silent
// mode and logs a warning, matching headless environments.
func NewPlayer(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("player sample rate %d: %w", sampleRate, engine.ErrInvalidSampleRate)
	}

	p := &Player{sampleRate: sampleRate}

	if err := portaudio.Initialize(); err != nil {
		logger.Warning(logger.CategoryAudio, "Audio playback not available, running in silent mode: %v", err)
		p.silent = true
		return p, nil
	}
	p.initialized = true

	logger.Info(logger.CategoryAudio, "Audio system initialized: %s", portaudio.VersionText())
	return p, nil
}

// Silent reports whether the player is running without a device.
func (p *Player) Silent() bool {
	return p.silent
}

// Play writes the buffer to the default output device and blocks until it
// has been fully submitted. In silent mode it sleeps for the buffer's
// duration instead.
func (p *Player) Play(samples []float64) error {
	if len(samples) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.silent {
		time.Sleep(p.duration(len(samples)))
		return nil
	}

	out := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(p.sampleRate), framesPerBuffer, &out)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	defer stream.Stop()

	for offset := 0; offset < len(samples); offset += framesPerBuffer {
		for i := range out {
			if offset+i < len(samples) {
				out[i] = clampSample(samples[offset+i])
			} else {
				out[i] = 0
			}
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write audio buffer: %w", err)
		}
	}

	return nil
}

// Close releases the audio device.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	p.initialized = false
	return portaudio.Terminate()
}

func (p *Player) duration(sampleCount int) time.Duration {
	seconds := float64(sampleCount) / float64(p.sampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// clampSample bounds a sample to the valid float32 output range.
func clampSample(v float64) float32 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return float32(v)
}

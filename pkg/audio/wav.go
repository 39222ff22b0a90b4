package audio

import (
	"fmt"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
	"github.com/jeff-barlow-spady/metrosim/pkg/logger"
)

// pcm16Scale converts between float samples in [-1, 1] and 16-bit PCM.
const pcm16Scale = 32767.0

// SaveWav writes mono float64 samples as a 16-bit PCM WAV file.
func SaveWav(samples []float64, sampleRate int, outputPath string) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav sample rate %d: %w", sampleRate, engine.ErrInvalidSampleRate)
	}

	logger.Debug(logger.CategoryAudio, "Saving %d samples to WAV file: %s", len(samples), outputPath)

	// Ensure the output directory exists
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		data[i] = int(s * pcm16Scale)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return nil
}

// LoadWav reads a mono 16-bit PCM WAV file back into float64 samples.
func LoadWav(filePath string) ([]float64, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file: %s", filePath)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read PCM data: %w", err)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / pcm16Scale
	}

	logger.Info(logger.CategoryAudio, "Loaded WAV file %s: %d samples at %d Hz",
		filePath, len(samples), buf.Format.SampleRate)

	return samples, buf.Format.SampleRate, nil
}

package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestWavSaveLoad(t *testing.T) {
	// Create a temporary directory for the test
	tempDir, err := os.MkdirTemp("", "metrosim_audio_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// A short 440 Hz tone
	sampleRate := 44100
	samples := make([]float64, sampleRate/10)
	for i := range samples {
		tm := float64(i) / float64(sampleRate)
		samples[i] = 0.3 * math.Sin(2*math.Pi*440.0*tm)
	}

	path := filepath.Join(tempDir, "tone.wav")
	if err := SaveWav(samples, sampleRate, path); err != nil {
		t.Fatalf("Failed to save WAV: %v", err)
	}

	loaded, loadedRate, err := LoadWav(path)
	if err != nil {
		t.Fatalf("Failed to load WAV: %v", err)
	}

	if loadedRate != sampleRate {
		t.Errorf("Expected sample rate %d, got %d", sampleRate, loadedRate)
	}
	if len(loaded) != len(samples) {
		t.Fatalf("Expected %d samples, got %d", len(samples), len(loaded))
	}

	// 16-bit quantization keeps samples within one PCM step
	for i := range samples {
		if math.Abs(loaded[i]-samples[i]) > 1.0/32767.0 {
			t.Fatalf("Sample %d differs beyond quantization: want %f, got %f",
				i, samples[i], loaded[i])
		}
	}
}

func TestSaveWavRejectsBadRate(t *testing.T) {
	err := SaveWav([]float64{0, 0.1}, 0, filepath.Join(os.TempDir(), "bad.wav"))
	if err == nil {
		t.Fatal("Expected error for zero sample rate")
	}
}

func TestSaveWavClampsOutOfRangeSamples(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "metrosim_audio_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "clip.wav")
	if err := SaveWav([]float64{2.5, -3.0, 0.5}, 8000, path); err != nil {
		t.Fatalf("Failed to save WAV: %v", err)
	}

	loaded, _, err := LoadWav(path)
	if err != nil {
		t.Fatalf("Failed to load WAV: %v", err)
	}
	for i, v := range loaded {
		if v > 1.0 || v < -1.0 {
			t.Errorf("Sample %d out of range after clamping: %f", i, v)
		}
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test audio defaults
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default SampleRate to be 44100, got %d", cfg.SampleRate)
	}
	if cfg.MasterVolume != 0.8 {
		t.Errorf("Expected default MasterVolume to be 0.8, got %f", cfg.MasterVolume)
	}
	if cfg.SilentMode {
		t.Error("Expected default SilentMode to be false")
	}

	// Test simulation defaults
	if cfg.Seed != 0 {
		t.Errorf("Expected default Seed to be 0, got %d", cfg.Seed)
	}
	if cfg.JourneyMinutes != 2.0 {
		t.Errorf("Expected default JourneyMinutes to be 2.0, got %f", cfg.JourneyMinutes)
	}
	if cfg.TrackWear != 0.5 || cfg.VehicleAge != 0.5 || cfg.PassengerLoad != 0.5 {
		t.Error("Expected default wear/age/load to be 0.5")
	}
	if cfg.Weather != "normal" {
		t.Errorf("Expected default Weather to be 'normal', got '%s'", cfg.Weather)
	}
}

func TestCurrentConfig(t *testing.T) {
	// Test that Current is initialized with default values
	if Current == nil {
		t.Fatal("Current config should not be nil")
	}

	if Current.SampleRate != 44100 {
		t.Errorf("Expected Current.SampleRate to be 44100, got %d", Current.SampleRate)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Weather = "rain"
	cfg.JourneyMinutes = 5.5

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	tempDir, err := os.MkdirTemp("", "metrosim_config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config back: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if loaded.Seed != 42 || loaded.Weather != "rain" || loaded.JourneyMinutes != 5.5 {
		t.Errorf("Round-tripped config does not match: %+v", loaded)
	}
}

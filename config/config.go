package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	// Audio configuration
	SampleRate   int     // output sample rate in Hz
	MasterVolume float64 // 0.0 to 1.0 gain applied before playback
	SilentMode   bool    // skip device output, pace in wall time instead

	// Simulation configuration
	Seed           int64   // 0 selects a time-based seed at startup
	JourneyMinutes float64 // default journey length
	TrackWear      float64 // 0.0 (new) to 1.0 (worn)
	VehicleAge     float64 // 0.0 (new) to 1.0 (old)
	PassengerLoad  float64 // 0.0 (empty) to 1.0 (full)
	Weather        string  // normal, rain, cold, hot

	// Output configuration
	OutputDir string // directory for rendered WAV files
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	outputDir := "./renders/" // Default fallback
	if dir, err := GetOutputDir(); err == nil {
		outputDir = dir
	}

	return &Config{
		// Default audio settings
		SampleRate:   44100,
		MasterVolume: 0.8,
		SilentMode:   false,

		// Default simulation settings: a mid-life vehicle on average track
		Seed:           0,
		JourneyMinutes: 2.0,
		TrackWear:      0.5,
		VehicleAge:     0.5,
		PassengerLoad:  0.5,
		Weather:        "normal",

		OutputDir: outputDir,
	}
}

// Current holds the active configuration
var Current = DefaultConfig()

// GetAppDir returns the path to the .metrosim directory
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, ".metrosim")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create .metrosim directory: %w", err)
	}

	return appDir, nil
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "config.json"), nil
}

// GetOutputDir returns the path to the rendered-audio directory
func GetOutputDir() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}

	outputDir := filepath.Join(appDir, "renders")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create renders directory: %w", err)
	}

	return outputDir, nil
}

// LoadConfig loads the configuration from the config file
func LoadConfig() error {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, use defaults
		Current = DefaultConfig()
		// Save the default config
		return SaveConfig()
	}

	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON data
	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Update current config
	Current = &config

	// Guard against hand-edited nonsense
	if Current.SampleRate <= 0 {
		Current.SampleRate = 44100
	}
	if Current.MasterVolume <= 0 || Current.MasterVolume > 1 {
		Current.MasterVolume = 0.8
	}

	return nil
}

// SaveConfig saves the configuration to the config file
func SaveConfig() error {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal config to JSON
	data, err := json.MarshalIndent(Current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

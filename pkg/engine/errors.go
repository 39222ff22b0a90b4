package engine

import (
	"errors"
)

// Common error types for the engine package
var (
	// ErrInvalidDuration indicates a non-positive duration was requested
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrInvalidSampleRate indicates a non-positive sample rate was configured
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

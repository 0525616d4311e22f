package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSelectionNotFound is returned when no daily selection exists for a (date, language) pair.
	ErrSelectionNotFound = errors.New("daily selection not found")
	// ErrConfigNotFound indicates the quiz configuration record has not been created yet.
	ErrConfigNotFound = errors.New("quiz config not found")
	// ErrInvalidConfig is the sentinel behind every ConfigurationError.
	ErrInvalidConfig = errors.New("invalid quiz config")
	// ErrInvalidSubmission indicates a malformed quiz submission.
	ErrInvalidSubmission = errors.New("invalid quiz submission")
	// ErrAttemptExists is returned when a profile already completed today's daily quiz.
	ErrAttemptExists = errors.New("daily quiz already attempted")
	// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

// ConfigurationError describes why a quiz config update was rejected.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

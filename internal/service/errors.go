package service

import "errors"

// Common service errors
var (
	// ErrEstimateNotFound is returned when no estimate has the requested id
	ErrEstimateNotFound = errors.New("estimate not found")
)

// IsNotFound reports whether err means the requested resource does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEstimateNotFound)
}

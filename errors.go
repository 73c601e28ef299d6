package geostore

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier is matched by errors.Is for any *ValidationError.
var ErrInvalidIdentifier = errors.New("invalid IP address or domain name")

// ValidationError is returned when the input is neither an IP address nor a domain name.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input format: %q", e.Input)
}

// Is reports whether target is ErrInvalidIdentifier.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

var (
	// ErrNotFound is returned when a geolocation record doesn't exist.
	ErrNotFound = errors.New("geolocation not found")

	// ErrConflict is returned when a geolocation record for the identifier already exists.
	ErrConflict = errors.New("geolocation record already exists")

	// ErrUpstream is returned when the geolocation provider fails or returns unusable data.
	ErrUpstream = errors.New("geolocation provider error or invalid response")

	// ErrResolution is returned when a domain name cannot be resolved.
	ErrResolution = errors.New("cannot resolve domain name")
)

// Storage errors.
// The underlying driver error is logged where it happens and never returned.
var (
	ErrStorageIntegrity   = errors.New("database integrity error")
	ErrStorageUnavailable = errors.New("database connection error")
	ErrStorageUnexpected  = errors.New("unexpected database error")
)

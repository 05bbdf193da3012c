package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrJourneyConflict is returned when a journey changed between read and write.
	ErrJourneyConflict = errors.New("journey was modified concurrently")
)

package storage

import "errors"

// ErrPersonNotFound is returned when no person matches the lookup.
var ErrPersonNotFound = errors.New("person not found")

// ErrVersionConflict is returned when a save is based on a stale copy of the person.
// Callers reload and retry.
var ErrVersionConflict = errors.New("person was modified concurrently")

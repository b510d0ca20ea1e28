package domain

import (
	"errors"
	"fmt"
)

// ErrSnapshotUnavailable is returned by snapshot readers when no snapshot
// covers the requested instant.
var ErrSnapshotUnavailable = errors.New("environment snapshot unavailable")

// ErrUnknownZone is returned when a zone id is not part of the site.
var ErrUnknownZone = errors.New("unknown zone")

// UnknownSpeciesError reports a species, bait, or predator key that is not in
// the profile registry. Scoring never falls back to a default profile.
type UnknownSpeciesError struct {
	Key        string
	Suggestion string // closest registered key, empty when nothing is close
}

func (e *UnknownSpeciesError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown species %q (did you mean %q?)", e.Key, e.Suggestion)
	}
	return fmt.Sprintf("unknown species %q", e.Key)
}

// ConfigurationRangeError reports a tunable outside its documented bounds.
// It is fatal at load time.
type ConfigurationRangeError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *ConfigurationRangeError) Error() string {
	return fmt.Sprintf("tunable %s=%g outside allowed range [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}

// MissingSnapshotFieldWarning records a snapshot field that was absent during
// scoring. The field contributed a neutral zero.
type MissingSnapshotFieldWarning struct {
	Field string `json:"field"`
}

func (w MissingSnapshotFieldWarning) String() string {
	return "missing snapshot field: " + w.Field
}

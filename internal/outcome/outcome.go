// Package outcome carries the result of a pipeline step that may finish with
// reduced fidelity instead of failing outright.
//
// Every degrade-capable step (registry load, frame load, mask application,
// caption rendering) returns a Result so callers can tell "proceeded with
// reduced fidelity" apart from "failed".
package outcome

import (
	"errors"
	"fmt"
)

// Status classifies how a step finished.
type Status int

const (
	// StatusOK means the step produced its full-fidelity value.
	StatusOK Status = iota
	// StatusDegraded means the step produced a usable fallback value.
	StatusDegraded
	// StatusFatal means the step produced nothing usable.
	StatusFatal
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ok":
		*s = StatusOK
	case "degraded":
		*s = StatusDegraded
	case "fatal":
		*s = StatusFatal
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Result pairs a value with the status of the step that produced it.
// Reason is nil for StatusOK.
type Result[T any] struct {
	Value  T
	Status Status
	Reason error
}

// Ok wraps a full-fidelity value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

// Degraded wraps a fallback value together with the reason the preferred path failed.
func Degraded[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Status: StatusDegraded, Reason: reason}
}

// Fatal reports a step that produced nothing usable.
func Fatal[T any](reason error) Result[T] {
	var zero T
	return Result[T]{Value: zero, Status: StatusFatal, Reason: reason}
}

// IsOK reports whether the step finished at full fidelity.
func (r Result[T]) IsOK() bool { return r.Status == StatusOK }

// IsDegraded reports whether the step fell back to a reduced-fidelity value.
func (r Result[T]) IsDegraded() bool { return r.Status == StatusDegraded }

// IsFatal reports whether the step failed.
func (r Result[T]) IsFatal() bool { return r.Status == StatusFatal }

// Unwrap returns the value, or the reason as an error when the step was fatal.
func (r Result[T]) Unwrap() (T, error) {
	if r.Status == StatusFatal {
		return r.Value, r.Reason
	}
	return r.Value, nil
}

// Error taxonomy. Every warning or failure produced by the pipeline wraps one of these.
var (
	// ErrAssetMissing marks an absent or unreadable frame or mask asset.
	ErrAssetMissing = errors.New("asset missing")
	// ErrManifestInvalid marks a malformed project frame manifest.
	ErrManifestInvalid = errors.New("manifest invalid")
	// ErrNoCandidateFrame marks a device type and orientation with no registered frame.
	ErrNoCandidateFrame = errors.New("no candidate frame")
	// ErrRenderFailure marks a raster decode or compose error on the screenshot itself.
	ErrRenderFailure = errors.New("render failure")
)

// RenderError is a fatal composition error with enough context to identify
// the screenshot that failed.
type RenderError struct {
	Device     string
	Screenshot string
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (device %s): %v", e.Screenshot, e.Device, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause to errors.Is.
func (e *RenderError) Unwrap() []error {
	return []error{ErrRenderFailure, e.Err}
}

// Package services defines the error taxonomy shared by pipeline stages.
//
// Stage code wraps failures with Wrap so every error carries the stage name,
// the operation that failed, and a sentinel marker the CLI edge can classify
// with errors.Is. Per-file failures never use these paths; they are recorded
// as FailureRecords and aggregated instead.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrecondition marks fatal preconditions such as a missing source
	// directory. These abort the run before any mutation.
	ErrPrecondition = errors.New("precondition failed")
	// ErrValidation marks rejected inputs (bad flag values, unusable config).
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration discovered at runtime.
	ErrConfiguration = errors.New("configuration error")
	// ErrLocked marks a destination already claimed by another run.
	ErrLocked = errors.New("destination locked")
	// ErrTransient marks recoverable I/O failures.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether err should abort the whole run rather than be
// recovered locally.
func Fatal(err error) bool {
	return errors.Is(err, ErrPrecondition) || errors.Is(err, ErrLocked)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/vanguard/internal/logger"
)

var (
	// ErrUnauthorized is returned when an action is invoked without a user identifier.
	ErrUnauthorized = stderrors.New("unauthorized: no user identifier")
	// ErrInvalidInput marks malformed caller input. Wrap it with the offending detail.
	ErrInvalidInput = stderrors.New("invalid input")
	// ErrInvalidFrequency marks an ally whose contact cadence is not positive.
	ErrInvalidFrequency = stderrors.New("ally contact frequency must be at least 1 day")
	// ErrLocked is returned by gated surfaces while the comms gate is locked.
	ErrLocked = stderrors.New("comms gate locked: restore contact with a neglected ally first")
	// ErrBatchLimit signals that the per-period batch ceiling is reached. Callers must stop, not retry.
	ErrBatchLimit = stderrors.New("daily intel limit reached")
	// ErrStaleLedger is returned when a season was archived but the live tracks could not be reset.
	ErrStaleLedger = stderrors.New("season archived but skill tracks were not reset")
)

// GenerationError is a transient failure of the text-generation collaborator.
// Timeouts, transport errors and unusable output are all reported this way.
type GenerationError struct {
	Kind string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Transient reports that the caller may offer a retry.
func (e *GenerationError) Transient() bool { return true }

// Invalid wraps ErrInvalidInput with a formatted detail.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsTransient reports whether err is a retryable upstream failure.
func IsTransient(err error) bool {
	var genErr *GenerationError
	return stderrors.As(err, &genErr)
}

// Is and As re-export the standard library helpers so callers need one import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

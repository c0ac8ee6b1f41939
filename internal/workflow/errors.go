package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a problem with paths, datasets, or columns that
	// operator action must fix.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotAcknowledged is returned when duplicate warnings were declined.
	ErrNotAcknowledged = errors.New("duplicate warnings not acknowledged")
	// ErrRunLocked is returned when another run holds the output lock.
	ErrRunLocked = errors.New("another run is using the output directory")
	// ErrPreflight is returned when readiness checks fail before a run.
	ErrPreflight = errors.New("preflight checks failed")
)

// SourceError ties a failure to the source it happened in.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func sourceErr(source string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Source: source, Err: err}
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

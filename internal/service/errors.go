package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means no API key is configured for the completion provider
	ErrMissingCredential = errors.New("completion API key is missing")
	// ErrNotFound is returned by stores when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrEmptyCompletion means the provider answered without any choices
	ErrEmptyCompletion = errors.New("no response from API")
)

// TransportError wraps a network or HTTP failure from the completion provider
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means a reply could not be read as the expected schema
type ParseError struct {
	Target string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Target, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err means the model did not produce a usable
// answer, as opposed to a configuration problem.
func IsRecoverable(err error) bool {
	var te *TransportError
	var pe *ParseError
	return errors.As(err, &te) || errors.As(err, &pe)
}

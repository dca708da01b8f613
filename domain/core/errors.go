package core

import (
	"errors"
	"fmt"
)

// EngineErrorKind classifies failures of the external spreadsheet engine.
// The parsing heuristics themselves never fail; the engine is the only
// fatal-error source of an ingestion call.
type EngineErrorKind string

const (
	// EngineUnavailable means the workbook engine object could not be created.
	EngineUnavailable EngineErrorKind = "engine_unavailable"
	// EngineAccessDenied means the engine refused the operation for
	// authorization or file-permission reasons.
	EngineAccessDenied EngineErrorKind = "access_denied"
	// EngineDriverMissing means a required peripheral or driver is absent.
	EngineDriverMissing EngineErrorKind = "driver_missing"
	// EngineIO means the underlying read of the workbook bytes failed.
	EngineIO EngineErrorKind = "io_failure"
	// EngineUnclassified covers every failure the adapter could not map.
	EngineUnclassified EngineErrorKind = "unclassified"
)

// engineMessages holds the fixed human-readable category per kind.
var engineMessages = map[EngineErrorKind]string{
	EngineUnavailable:   "spreadsheet engine unavailable",
	EngineAccessDenied:  "access to workbook denied",
	EngineDriverMissing: "required driver missing",
	EngineIO:            "workbook I/O failure",
	EngineUnclassified:  "unclassified engine failure",
}

// EngineError is the single failure signal an ingestion call reports when the
// external collaborator fails. The in-progress dataset is discarded; there is
// no automatic retry.
type EngineError struct {
	Kind  EngineErrorKind
	Cause error
}

func (e *EngineError) Error() string {
	msg := engineMessages[e.Kind]
	if msg == "" {
		msg = engineMessages[EngineUnclassified]
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// NewEngineError wraps an engine failure with its classified kind.
func NewEngineError(kind EngineErrorKind, cause error) *EngineError {
	return &EngineError{Kind: kind, Cause: cause}
}

// EngineKind extracts the failure kind from an error chain, returning
// EngineUnclassified when the chain holds no EngineError.
func EngineKind(err error) EngineErrorKind {
	var engErr *EngineError
	if errors.As(err, &engErr) {
		return engErr.Kind
	}
	return EngineUnclassified
}

// IsEngineError checks whether an error chain contains an engine failure.
func IsEngineError(err error) bool {
	var engErr *EngineError
	return errors.As(err, &engErr)
}

// Domain errors - centralized error definitions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateTable = errors.New("duplicate table name in dataset")
)

// NewNotFoundError builds a not-found error with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// IsNotFoundError checks for any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

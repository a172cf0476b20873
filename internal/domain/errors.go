package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies user-visible analysis failures
type ErrorKind string

const (
	// ErrKindMalformedRecord: a transaction row failed to coerce to the
	// required shape. Fatal for the whole run, no partial results.
	ErrKindMalformedRecord ErrorKind = "MALFORMED_RECORD"

	// ErrKindEmptyDataset: the uploaded table contains no rows. Raised
	// before any detector runs.
	ErrKindEmptyDataset ErrorKind = "EMPTY_DATASET"
)

// AnalysisError is the single structured error surfaced to callers.
// No partial or degraded payload is ever returned alongside one.
type AnalysisError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewMalformedRecord builds a MalformedRecord error for a 1-based row number.
func NewMalformedRecord(row int, detail string) *AnalysisError {
	return &AnalysisError{
		Kind:    ErrKindMalformedRecord,
		Message: fmt.Sprintf("transaction row %d is malformed: %s", row, detail),
	}
}

// NewEmptyDataset builds an EmptyDataset error.
func NewEmptyDataset() *AnalysisError {
	return &AnalysisError{
		Kind:    ErrKindEmptyDataset,
		Message: "transaction table contains no rows",
	}
}

// IsKind reports whether err is an AnalysisError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Kind == kind
}

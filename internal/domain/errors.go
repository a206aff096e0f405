package domain

import (
	"errors"
	"fmt"
	"strings"
)

type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid fund identifier %q: %s", e.Identifier, e.Reason)
}

// InvalidSnapshotError is returned when provider output fails schema
// validation at the provider boundary
type InvalidSnapshotError struct {
	Identifier string
	Reason     string
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid holdings data for %s: %s", e.Identifier, e.Reason)
}

type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fund %s not found", e.Identifier)
}

type NoDataError struct {
	Identifier string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("fund %s does not publish holdings information", e.Identifier)
}

// TransientError wraps a network or provider failure that is safe to retry
type TransientError struct {
	Identifier string
	Err        error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("temporary failure fetching %s: %v", e.Identifier, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

type FundFailure struct {
	Identifier string
	Err        error
}

type InsufficientInputError struct {
	Resolved int
	Failed   []FundFailure
}

func (e *InsufficientInputError) Error() string {
	msg := fmt.Sprintf("at least 2 valid funds are required for analysis, got %d", e.Resolved)
	if len(e.Failed) > 0 {
		ids := []string{}
		for _, f := range e.Failed {
			ids = append(ids, f.Identifier)
		}
		msg += fmt.Sprintf(" (failed: %s)", strings.Join(ids, ", "))
	}
	return msg
}

const (
	ErrorTypeInvalidIdentifier = "invalid_identifier"
	ErrorTypeInvalidSnapshot   = "invalid_snapshot"
	ErrorTypeNotFound          = "not_found"
	ErrorTypeNoData            = "no_data"
	ErrorTypeTransient         = "transient"
	ErrorTypeInsufficientInput = "insufficient_input"
	ErrorTypeInternal          = "internal"
)

// ErrorType maps an error chain to a stable code for serialized output
func ErrorType(err error) string {
	var (
		invalidIdentifier *InvalidIdentifierError
		invalidSnapshot   *InvalidSnapshotError
		notFound          *NotFoundError
		noData            *NoDataError
		transient         *TransientError
		insufficient      *InsufficientInputError
	)
	switch {
	case errors.As(err, &invalidIdentifier):
		return ErrorTypeInvalidIdentifier
	case errors.As(err, &invalidSnapshot):
		return ErrorTypeInvalidSnapshot
	case errors.As(err, &notFound):
		return ErrorTypeNotFound
	case errors.As(err, &noData):
		return ErrorTypeNoData
	case errors.As(err, &transient):
		return ErrorTypeTransient
	case errors.As(err, &insufficient):
		return ErrorTypeInsufficientInput
	}
	return ErrorTypeInternal
}

func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals a malformed or underspecified request.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidStrategy signals an unknown ranking strategy name.
	ErrInvalidStrategy = errors.New("invalid strategy")
	// ErrInsufficientCorpus signals that no worker documents are eligible for training.
	ErrInsufficientCorpus = errors.New("insufficient corpus")
	// ErrEngineUnavailable signals that the model cache store is unreachable.
	ErrEngineUnavailable = errors.New("recommendation engine unavailable")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError carries the offending field alongside ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for a single field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

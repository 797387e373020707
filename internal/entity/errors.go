package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Lookup errors
	ErrNotFound           = errors.New("resource not found")
	ErrRequestNotFound    = fmt.Errorf("request %w", ErrNotFound)
	ErrQuestionNotFound   = fmt.Errorf("question %w", ErrNotFound)
	ErrProposalNotFound   = fmt.Errorf("proposal %w", ErrNotFound)
	ErrComparisonNotFound = fmt.Errorf("comparison %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrTokenNotFound      = fmt.Errorf("token %w", ErrNotFound)
	ErrNoAnswers          = fmt.Errorf("answers for request %w", ErrNotFound)

	// Validation errors
	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = fmt.Errorf("%w: required field is missing", ErrValidation)
	ErrInvalidParameter = fmt.Errorf("%w: invalid parameter", ErrValidation)
	ErrUnknownQuestion  = fmt.Errorf("%w: unknown question", ErrValidation)
	ErrUnknownService   = fmt.Errorf("%w: unknown service type", ErrValidation)
	ErrInvalidFormat    = fmt.Errorf("%w: invalid format", ErrValidation)
	ErrTokenExpired     = fmt.Errorf("%w: token expired", ErrValidation)

	// Access errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrForbidden          = errors.New("forbidden")

	// State errors
	ErrConflict    = errors.New("conflict")
	ErrEmailExists = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrRateLimited = errors.New("rate limited")

	// Upstream errors
	ErrUpstream        = errors.New("upstream service error")
	ErrUpstreamTimeout = errors.New("upstream service timeout")
)

// BadUpstreamOutputError is returned when the text-generation service replied
// with content that is not the JSON document we asked for.
type BadUpstreamOutputError struct {
	Raw string
	Err error
}

func (e *BadUpstreamOutputError) Error() string {
	return fmt.Sprintf("upstream returned unusable output: %v", e.Err)
}

func (e *BadUpstreamOutputError) Unwrap() error {
	return e.Err
}

// RateLimitError carries how long the caller has to wait before retrying.
type RateLimitError struct {
	RetryAfter int64 // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry in %d seconds", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// Package common defines shared constants and sentinel errors used across
// the symptom checker services. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors.
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorUnauthorized       = errors.New("unauthorized")

	// Validation errors on inbound payloads.
	ErrorValidation = errors.New("validation error")

	// Analysis provider returned a nominal success with no usable text.
	ErrorEmptyAnalysis = errors.New("empty analysis response")
)

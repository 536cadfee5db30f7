// Package common defines shared sentinel errors used across the journal
// layers (models, repositories, services, export pipeline, CLI). Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrInvalidPath = errors.New("path is outside the journal directory")

	// Validation errors.
	ErrEmptyEntry   = errors.New("entry has neither text nor image")
	ErrInvalidEntry = errors.New("invalid entry")
	ErrFutureDate   = errors.New("date is in the future")

	// Platform collaborator errors.
	ErrCanceled  = errors.New("canceled")
	ErrNoCapture = errors.New("nothing was captured")
)

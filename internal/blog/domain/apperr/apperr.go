// Package apperr defines the error classes services report to the HTTP layer.
// Services wrap one of these sentinels; callers match with errors.Is.
package apperr

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnprocessable = errors.New("unprocessable entity")
)

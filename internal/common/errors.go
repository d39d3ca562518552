// Package common holds sentinel errors shared by the repository, service and
// handler layers. Callers wrap them with fmt.Errorf("...: %w", err) and match
// with errors.Is.
package common

import "errors"

var (
	// input errors, shown inline and recoverable
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("username already exists")
	ErrAuth       = errors.New("invalid username or password")

	// storage errors
	ErrFormat = errors.New("credential data is not valid")

	// model errors
	ErrModel = errors.New("model invocation failed")
)

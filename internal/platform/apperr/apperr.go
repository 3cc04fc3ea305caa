// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for Verso.

It provides a rich error type that bridges the gap between low-level
domain/storage errors and the messages the front-end is allowed to print.

Architecture:

  - AppError: A struct containing a machine-readable Code and a user-friendly message.
  - Cause chain: Compatible with errors.Is / errors.As for wrapping.
  - Details: Field-level validation failures for VALIDATION_ERROR results.

Every expected failure that leaves the service layer is an [AppError]. The
worst outcome of any core operation is "request not applied"; nothing in the
core is fatal to the process.
*/
package apperr

import (
	"errors"
)

// Machine-readable error codes carried by [AppError].
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Verso services.
//
// It carries a machine-readable code, a client-safe message, and an optional
// slice of field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never shown to end users, to
// avoid leaking internal implementation details (e.g., upstream API bodies).
// Authorization failures and validation failures surface through the same
// shape so callers cannot distinguish which specific check failed beyond the
// code itself.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR results.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Expected Failures

// NotFound creates a NOT_FOUND [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Song") // Returns "Song not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// Unauthorized creates an UNAUTHORIZED [AppError] for failed authentication.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: msg,
	}
}

// Forbidden creates a FORBIDDEN [AppError] for insufficient privileges.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: msg,
	}
}

// Conflict creates a CONFLICT [AppError] for duplicate or already-decided state.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: msg,
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional
// per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidationError,
		Message: msg,
		Details: details,
	}
}

// Unavailable creates an UNAVAILABLE [AppError] for collaborator failures
// (network, upstream API) that were downgraded to a local failure value.
func Unavailable(msg string, cause error) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: msg,
		Cause:   cause,
	}
}

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err is an [*AppError] carrying the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

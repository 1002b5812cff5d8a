// Package errors provides common domain error types for the spaces CLI.
//
// This package defines sentinel errors for the failure classes the session
// layer distinguishes: input rejected before any request is issued, an
// operation refused because one is already in flight, a missing resource,
// and a failed exchange with the remote knowledge service. Using typed
// errors enables consistent error handling patterns with errors.Is() checks.
//
// Usage:
//
//	import sperrors "github.com/openspaces/spaces-cli/pkg/errors"
//
//	// Return a domain error
//	return sperrors.ErrBusy
//
//	// Check for domain errors
//	if sperrors.IsBusy(err) {
//	    // a request is already pending; caller resubmits later
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for session-layer conditions.
var (
	// ErrValidation indicates input rejected locally before any request was
	// dispatched (empty query text, missing file).
	ErrValidation = errors.New("validation error")

	// ErrBusy indicates an operation was refused because another one is
	// already in flight on the same controller (single-flight guard).
	ErrBusy = errors.New("operation already in progress")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrService indicates a failed exchange with the remote knowledge
	// service. Transport failures and non-success responses are deliberately
	// conflated under this sentinel; the underlying cause stays in the wrap
	// chain for diagnostics.
	ErrService = errors.New("service error")
)

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsBusy reports whether any error in err's chain is ErrBusy.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsService reports whether any error in err's chain is ErrService.
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}

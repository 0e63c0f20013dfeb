// Package storefront holds the domain errors shared by repositories,
// services and handlers.
package storefront

import "errors"

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is neither the owner nor an admin.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means a state transition was already applied
	// (order already paid or already delivered).
	ErrConflict = errors.New("conflict")

	// ErrPaymentVerificationFailed means the gateway proof did not match
	// the expected amount or reference.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrUpstreamUnavailable means a gateway call failed or timed out.
	// Callers may retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInvalidInput means the request failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

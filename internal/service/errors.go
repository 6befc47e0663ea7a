package service

import "errors"

// Service-level errors, translated to HTTP statuses at the handler boundary.
var (
	// ErrInvalidArgument is returned for malformed input: unknown tasks,
	// non-positive point amounts, bad checkout parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPaymentProvider is returned when the external payment provider
	// cannot be reached or rejects a request. The ledger is never mutated
	// when this is returned.
	ErrPaymentProvider = errors.New("payment provider request failed")

	// ErrPaymentNotCompleted is returned when a confirmation callback names
	// a session the provider does not report as paid.
	ErrPaymentNotCompleted = errors.New("payment not completed")
)

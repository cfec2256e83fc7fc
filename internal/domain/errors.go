package domain

import "errors"

var (
	// ErrCompletionUnavailable means the external model could not produce a
	// reply (transport failure, rate limit, timeout, empty answer).
	ErrCompletionUnavailable = errors.New("completion unavailable")

	// ErrInvalidRequest marks caller input that failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrOrderRejected means the order policy blocked the order.
	ErrOrderRejected = errors.New("order rejected")
)

package backend

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the backend rejects the session token.
	ErrUnauthorized = errors.New("backend rejected the session token")

	// ErrUnexpectedStatus is returned when the backend answers with a status
	// code the portal does not know how to handle.
	ErrUnexpectedStatus = errors.New("unexpected backend response status")

	// ErrMalformedResponse is returned when a backend response body cannot be
	// decoded.
	ErrMalformedResponse = errors.New("malformed backend response")
)

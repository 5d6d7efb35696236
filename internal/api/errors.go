package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a single-entity fetch gets a 404.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned on a 401. Handlers must clear the local
	// session and send the caller to the login page before surfacing any
	// operation-specific error.
	ErrUnauthorized = errors.New("unauthorized")
)

// RequestError is a non-2xx response from the backend that is not covered by
// one of the sentinel errors above. Message carries the backend's "detail"
// or "message" field when the body parsed, otherwise the raw body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// NetworkError wraps a transport-level failure (the request never completed).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

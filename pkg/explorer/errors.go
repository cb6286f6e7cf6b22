package explorer

import (
	"errors"
	"fmt"
)

// Failure classes surfaced by a Source.
var (
	// ErrTransport covers connection failures and timeouts.
	ErrTransport = errors.New("network failure")

	// ErrMalformed indicates a body that is not the expected JSON shape.
	ErrMalformed = errors.New("malformed response")

	// ErrNotFound indicates the server does not know the id.
	ErrNotFound = errors.New("not found")
)

// StatusError is a non-2xx answer, or a 2xx answer carrying an error field.
type StatusError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Path, e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// IsNotFound reports whether err means the id is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

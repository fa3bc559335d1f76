package hexmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFeatures is returned when a dataset decodes to zero features.
	ErrNoFeatures = errors.New("dataset has no features")

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("controller closed")
)

// StatusError is returned by HTTPSource for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// Temporary reports whether retrying the request might succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == 429
}

package hexgrid

import (
	"fmt"
)

// ErrInvalidResolution indicates a resolution outside the H3 range (0-15).
//
// Normal zoom values never produce one; seeing it means a caller passed a
// resolution that did not come from ResolutionForZoom.
type ErrInvalidResolution struct {
	Resolution int
}

func (e *ErrInvalidResolution) Error() string {
	return fmt.Sprintf("invalid resolution %d (must be %d-%d)",
		e.Resolution, h3MinResolution, h3MaxResolution)
}

// ErrInvalidCoordinate indicates a point outside the WGS-84 domain
type ErrInvalidCoordinate struct {
	Lat, Lng float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lng=%f (lat must be ±90, lng must be ±180)",
		e.Lat, e.Lng)
}

// ErrIndexing wraps a failure reported by the H3 library
type ErrIndexing struct {
	Op  string
	Err error
}

func (e *ErrIndexing) Error() string {
	return fmt.Sprintf("h3 %s: %v", e.Op, e.Err)
}

func (e *ErrIndexing) Unwrap() error {
	return e.Err
}

package hexgrid

// Resolution is an H3 grid resolution.
//
// Higher values mean smaller cells. The zoom mapping only produces values
// between MinResolution and MaxResolution.
type Resolution int

const (
	// MinResolution is the coarsest resolution produced by ResolutionForZoom.
	MinResolution Resolution = 3

	// MaxResolution is the finest resolution produced by ResolutionForZoom.
	MaxResolution Resolution = 9

	h3MinResolution = 0
	h3MaxResolution = 15
)

// Valid reports whether r is inside the range the H3 library accepts.
func (r Resolution) Valid() bool {
	return r >= h3MinResolution && r <= h3MaxResolution
}

// ResolutionForZoom converts a web map zoom level to an H3 resolution.
//
// Zoom levels are mapped in two-level steps, with inclusive upper bounds:
//   - Zoom ≤ 6:   resolution 3
//   - Zoom 7-8:   resolution 4
//   - Zoom 9-10:  resolution 5
//   - Zoom 11-12: resolution 6
//   - Zoom 13-14: resolution 7
//   - Zoom 15-16: resolution 8
//   - Zoom 17+:   resolution 9
//
// Every integer is accepted; negative zoom falls into the first step. The
// table sets the visual density of the map and must not drift.
func ResolutionForZoom(zoom int) Resolution {
	switch {
	case zoom <= 6:
		return 3
	case zoom <= 8:
		return 4
	case zoom <= 10:
		return 5
	case zoom <= 12:
		return 6
	case zoom <= 14:
		return 7
	case zoom <= 16:
		return 8
	default:
		return 9
	}
}

package hexmap

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/hexmap/internal/hexgrid"
	"github.com/beetlebugorg/hexmap/internal/projection"
)

// DefaultColor replaces feature colors that are not valid hex strings.
const DefaultColor = "#3388FF"

// Feature is one polygon record of a dataset.
//
// Features are created when a dataset is parsed and never modified
// afterwards.
type Feature struct {
	// ID correlates rendered cells back to the source record.
	ID int64

	// Color is the display color, normalized to a '#'-prefixed hex string.
	Color string

	// Geometry holds the polygons in raw EPSG:3857 coordinates (meters).
	// Each polygon is a list of rings; the first ring is the outer boundary
	// and any others are holes.
	Geometry orb.MultiPolygon
}

// Resolution is an H3 grid resolution.
type Resolution = hexgrid.Resolution

// ResolutionForZoom converts a web map zoom level to an H3 resolution.
//
//   - Zoom ≤ 6:   3
//   - Zoom 7-8:   4
//   - Zoom 9-10:  5
//   - Zoom 11-12: 6
//   - Zoom 13-14: 7
//   - Zoom 15-16: 8
//   - Zoom 17+:   9
func ResolutionForZoom(zoom int) Resolution {
	return hexgrid.ResolutionForZoom(zoom)
}

// Centroid returns the representative point of a feature.
//
// Every vertex of every ring of every polygon is projected to WGS-84 and the
// latitudes and longitudes are averaged independently. Hole rings count
// exactly like outer rings and closing vertices are counted twice, so this
// is not the area centroid of concave or holed shapes. Culling is defined
// against this point, so it must stay as it is.
//
// The second return value is false when the geometry has no vertices.
func Centroid(f Feature) (LatLng, bool) {
	var sumLat, sumLng float64
	count := 0

	for _, polygon := range f.Geometry {
		for _, ring := range polygon {
			for _, p := range ring {
				lat, lng := projection.ToGeodetic(p[0], p[1])
				sumLat += lat
				sumLng += lng
				count++
			}
		}
	}

	if count == 0 {
		return LatLng{}, false
	}
	return LatLng{Lat: sumLat / float64(count), Lng: sumLng / float64(count)}, true
}

// Bounds returns the WGS-84 bounding box of every projected vertex. The
// second return value is false when the geometry has no vertices.
func (f Feature) Bounds() (Bounds, bool) {
	var b Bounds
	found := false

	for _, polygon := range f.Geometry {
		for _, ring := range polygon {
			for _, p := range ring {
				lat, lng := projection.ToGeodetic(p[0], p[1])
				pt := Bounds{MinLon: lng, MaxLon: lng, MinLat: lat, MaxLat: lat}
				if !found {
					b, found = pt, true
					continue
				}
				b = b.Union(pt)
			}
		}
	}
	return b, found
}

// NormalizeColor prefixes color with '#' when it is missing.
//
// Case and digits are left untouched: "ABCDEF" becomes "#ABCDEF".
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if strings.HasPrefix(color, "#") {
		return color
	}
	return "#" + color
}

// ValidColor reports whether color is a hex color with 3, 4, 6 or 8 digits,
// with or without a leading '#'.
func ValidColor(color string) bool {
	digits := strings.TrimPrefix(strings.TrimSpace(color), "#")
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

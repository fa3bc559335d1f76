package hexmap

import (
	"fmt"
	"math"

	"github.com/beetlebugorg/hexmap/internal/hexgrid"
)

// LatLng is a geodetic point in WGS-84 decimal degrees.
type LatLng = hexgrid.LatLng

// Bounds represents a geographic bounding box in WGS-84 coordinates.
//
// Coordinates are in decimal degrees.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// NewBounds builds a Bounds from edges in map-widget order.
func NewBounds(south, west, north, east float64) Bounds {
	return Bounds{MinLon: west, MaxLon: east, MinLat: south, MaxLat: north}
}

// Contains returns true if the point (lon, lat) is within the bounds.
// Points on an edge are inside.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// ContainsLatLng is Contains for a LatLng.
func (b Bounds) ContainsLatLng(p LatLng) bool {
	return b.Contains(p.Lng, p.Lat)
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Pad returns a new Bounds grown by ratio times its own span on each side.
//
// Latitude edges move by ratio*(MaxLat-MinLat) and longitude edges by
// ratio*(MaxLon-MinLon), so Pad(0.2) on a 1°×1° box yields a 1.4°×1.4° box.
func (b Bounds) Pad(ratio float64) Bounds {
	latBuffer := math.Abs(b.MaxLat-b.MinLat) * ratio
	lonBuffer := math.Abs(b.MaxLon-b.MinLon) * ratio
	return Bounds{
		MinLon: b.MinLon - lonBuffer,
		MaxLon: b.MaxLon + lonBuffer,
		MinLat: b.MinLat - latBuffer,
		MaxLat: b.MaxLat + latBuffer,
	}
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLon: math.Min(b.MinLon, other.MinLon),
		MaxLon: math.Max(b.MaxLon, other.MaxLon),
		MinLat: math.Min(b.MinLat, other.MinLat),
		MaxLat: math.Max(b.MaxLat, other.MaxLat),
	}
}

// String formats the bounds as south,west,north,east.
func (b Bounds) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// Viewport is the visible map area plus the padding used for culling.
//
// Padding is a fraction of the box span added on every side before the
// containment test, so cells just outside the screen are already drawn when
// the user starts to pan.
type Viewport struct {
	Bounds  Bounds
	Padding float64
}

// NewViewport creates a viewport with DefaultPadding.
func NewViewport(bounds Bounds) Viewport {
	return Viewport{Bounds: bounds, Padding: DefaultPadding}
}

// Padded returns the region features are tested against.
func (v Viewport) Padded() Bounds {
	return v.Bounds.Pad(v.Padding)
}

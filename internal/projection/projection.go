// Package projection converts source dataset coordinates to WGS-84.
//
// Source datasets are stored in spherical Web Mercator (EPSG:3857): a sphere
// of radius 6378137 m with no false easting or northing. The inverse is the
// standard closed form, so latitude approaches ±90° as y grows without bound.
package projection

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// EarthRadius is the sphere radius of the source projection in meters.
const EarthRadius = orb.EarthRadius

// ToGeodetic converts an EPSG:3857 coordinate (meters) to latitude and
// longitude in degrees.
//
// The function is pure and safe for concurrent use.
func ToGeodetic(x, y float64) (lat, lon float64) {
	p := project.Mercator.ToWGS84(orb.Point{x, y})
	return p.Lat(), p.Lon()
}

// FromGeodetic converts latitude and longitude in degrees to EPSG:3857.
//
// Latitudes beyond the Mercator limit are clamped by the projection.
func FromGeodetic(lat, lon float64) (x, y float64) {
	p := project.WGS84.ToMercator(orb.Point{lon, lat})
	return p.X(), p.Y()
}

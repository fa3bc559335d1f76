package hexmap

import (
	"github.com/paulmach/orb"

	"github.com/beetlebugorg/hexmap/internal/projection"
)

// squareFeature builds a feature whose four projected corners average to
// (lat, lng).
func squareFeature(id int64, color string, lat, lng, half float64) Feature {
	corners := [][2]float64{
		{lat - half, lng - half},
		{lat - half, lng + half},
		{lat + half, lng + half},
		{lat + half, lng - half},
	}
	ring := make(orb.Ring, 0, len(corners))
	for _, c := range corners {
		x, y := projection.FromGeodetic(c[0], c[1])
		ring = append(ring, orb.Point{x, y})
	}
	return Feature{ID: id, Color: color, Geometry: orb.MultiPolygon{{ring}}}
}

func pointFeature(id int64, lat, lng float64) Feature {
	return squareFeature(id, "#112233", lat, lng, 0.001)
}

type fakeView struct {
	zoom   int
	bounds Bounds
}

func (v *fakeView) Zoom() int      { return v.zoom }
func (v *fakeView) Bounds() Bounds { return v.bounds }

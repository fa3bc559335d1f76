// Package hexgrid maps geodetic points onto the H3 hexagonal grid.
//
// The grid itself comes from github.com/uber/h3-go. This package pins the two
// operations the renderer needs (point to cell, cell to boundary), validates
// their inputs, and memoizes boundaries.
package hexgrid

import (
	"errors"
	"math"

	"github.com/uber/h3-go/v4"
)

// LatLng is a WGS-84 point in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

var errZeroCell = errors.New("library returned the zero cell")

// DefaultCacheSize is the boundary cache budget used by NewIndexer.
const DefaultCacheSize = 4 * 1024 * 1024

// Indexer computes H3 cells and their boundaries.
//
// An Indexer is safe for concurrent use.
type Indexer struct {
	cache *BoundaryCache
}

// NewIndexer creates an indexer with a boundary cache of DefaultCacheSize.
func NewIndexer() *Indexer {
	return NewIndexerWithCache(NewBoundaryCache(DefaultCacheSize))
}

// NewIndexerWithCache creates an indexer backed by the given cache.
// A nil cache disables memoization.
func NewIndexerWithCache(cache *BoundaryCache) *Indexer {
	return &Indexer{cache: cache}
}

// CellForPoint returns the cell at resolution res that contains the point.
func (ix *Indexer) CellForPoint(lat, lng float64, res Resolution) (h3.Cell, error) {
	if !res.Valid() {
		return 0, &ErrInvalidResolution{Resolution: int(res)}
	}
	if !ValidLatLng(lat, lng) {
		return 0, &ErrInvalidCoordinate{Lat: lat, Lng: lng}
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), int(res))
	if err != nil {
		return 0, &ErrIndexing{Op: "latLngToCell", Err: err}
	}
	if cell == 0 {
		return 0, &ErrIndexing{Op: "latLngToCell", Err: errZeroCell}
	}
	return cell, nil
}

// Boundary returns the vertices of cell in order.
//
// The ring is not closed: the first vertex is not repeated at the end.
// Hexagons have six vertices; pentagons and cells crossing icosahedron edges
// can have a different count.
func (ix *Indexer) Boundary(cell h3.Cell) ([]LatLng, error) {
	if ix.cache == nil {
		return cellBoundary(cell)
	}
	return ix.cache.Get(cell, func() ([]LatLng, error) {
		return cellBoundary(cell)
	})
}

// CacheStats returns boundary cache statistics, or zero stats when the
// indexer has no cache.
func (ix *Indexer) CacheStats() CacheStats {
	if ix.cache == nil {
		return CacheStats{}
	}
	return ix.cache.Stats()
}

func cellBoundary(cell h3.Cell) ([]LatLng, error) {
	boundary, err := h3.CellToBoundary(cell)
	if err != nil {
		return nil, &ErrIndexing{Op: "cellToBoundary", Err: err}
	}

	ring := make([]LatLng, len(boundary))
	for i, v := range boundary {
		ring[i] = LatLng{Lat: v.Lat, Lng: v.Lng}
	}
	return ring, nil
}

// ValidLatLng reports whether the point is a finite WGS-84 coordinate.
func ValidLatLng(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	if lat < -90 || lat > 90 {
		return false
	}
	if lng < -180 || lng > 180 {
		return false
	}
	return true
}

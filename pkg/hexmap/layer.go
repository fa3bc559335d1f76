package hexmap

import (
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Style controls how a cell is drawn.
type Style struct {
	FillColor     string
	FillOpacity   float64
	StrokeColor   string
	StrokeWeight  float64
	StrokeOpacity float64
}

// DefaultStyle returns the base cell style: fill opacity 0.6, stroke
// opacity 0.8 and stroke weight 1.
func DefaultStyle() Style {
	return Style{
		FillColor:     DefaultColor,
		FillOpacity:   0.6,
		StrokeColor:   DefaultColor,
		StrokeWeight:  1,
		StrokeOpacity: 0.8,
	}
}

// WithColor returns a copy of s that fills and strokes with color.
func (s Style) WithColor(color string) Style {
	s.FillColor = color
	s.StrokeColor = color
	return s
}

// Cell is one hexagon emitted by a render pass.
type Cell struct {
	// Index is the H3 cell index in its canonical hex string form.
	Index string

	// Boundary is the open ring of cell vertices in WGS-84.
	Boundary []LatLng

	// Color is the normalized color of the source feature.
	Color string

	// FeatureID is the ID of the source feature.
	FeatureID int64

	// Resolution is the pass resolution the cell was indexed at.
	Resolution Resolution
}

// Layer is the display surface cells are drawn on.
//
// A Layer is only called from the scheduler goroutine.
type Layer interface {
	// AddCell draws a cell.
	AddCell(cell Cell, style Style)

	// Clear removes every cell.
	Clear()
}

// StyledCell is a cell together with the style it was drawn with.
type StyledCell struct {
	Cell  Cell
	Style Style
}

// MemoryLayer is a Layer that keeps cells in memory.
//
// It is safe for concurrent use, so a reader such as an HTTP handler may
// inspect it while passes run.
type MemoryLayer struct {
	mu     sync.RWMutex
	cells  []StyledCell
	clears int
}

// NewMemoryLayer creates an empty MemoryLayer.
func NewMemoryLayer() *MemoryLayer {
	return &MemoryLayer{}
}

// AddCell appends a cell.
func (l *MemoryLayer) AddCell(cell Cell, style Style) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cells = append(l.cells, StyledCell{Cell: cell, Style: style})
}

// Clear removes every cell.
func (l *MemoryLayer) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cells = nil
	l.clears++
}

// Remove deletes all cells with the given index and returns how many were
// removed.
func (l *MemoryLayer) Remove(index string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.cells[:0]
	removed := 0
	for _, c := range l.cells {
		if c.Cell.Index == index {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(l.cells); i++ {
		l.cells[i] = StyledCell{}
	}
	l.cells = kept
	return removed
}

// Len returns the number of cells on the layer.
func (l *MemoryLayer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cells)
}

// Clears returns how many times Clear has been called.
func (l *MemoryLayer) Clears() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.clears
}

// Cells returns a copy of the cells in draw order.
func (l *MemoryLayer) Cells() []Cell {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Cell, len(l.cells))
	for i, c := range l.cells {
		out[i] = c.Cell
	}
	return out
}

// Styled returns a copy of the cells with their styles, in draw order.
func (l *MemoryLayer) Styled() []StyledCell {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]StyledCell, len(l.cells))
	copy(out, l.cells)
	return out
}

// FeatureCollection exports the layer as GeoJSON polygons in WGS-84.
//
// Rings are closed and style properties follow the simplestyle names
// (fill, fill-opacity, stroke, stroke-width, stroke-opacity).
func (l *MemoryLayer) FeatureCollection() *geojson.FeatureCollection {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fc := geojson.NewFeatureCollection()
	for _, sc := range l.cells {
		c := sc.Cell
		ring := make(orb.Ring, 0, len(c.Boundary)+1)
		for _, v := range c.Boundary {
			ring = append(ring, orb.Point{v.Lng, v.Lat})
		}
		if len(ring) > 0 {
			ring = append(ring, ring[0])
		}

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["id"] = c.FeatureID
		f.Properties["h3_index"] = c.Index
		f.Properties["resolution"] = int(c.Resolution)
		f.Properties["color"] = c.Color
		f.Properties["fill"] = sc.Style.FillColor
		f.Properties["fill-opacity"] = sc.Style.FillOpacity
		f.Properties["stroke"] = sc.Style.StrokeColor
		f.Properties["stroke-width"] = sc.Style.StrokeWeight
		f.Properties["stroke-opacity"] = sc.Style.StrokeOpacity
		fc.Append(f)
	}
	return fc
}

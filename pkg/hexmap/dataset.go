package hexmap

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property names read from each GeoJSON feature.
const (
	PropertyID    = "ID"
	PropertyColor = "COLOR_HEX"
)

// Dataset is an immutable snapshot of loaded features.
type Dataset struct {
	// ID identifies this load. Every successful load gets a new one.
	ID uuid.UUID

	// Features in file order. Culling preserves this order.
	Features []Feature

	// CRS is the name from the collection's crs member or, failing that,
	// from the first geometry that carries one.
	CRS string

	// ColorFallbacks counts features whose color was replaced by
	// DefaultColor.
	ColorFallbacks int

	// LoadedAt is when the dataset was parsed.
	LoadedAt time.Time

	extentOnce sync.Once
	extent     Bounds
	hasExtent  bool
}

// Extent returns the WGS-84 bounding box of all features. It is computed
// on first use. The second return value is false when no feature has
// vertices.
func (d *Dataset) Extent() (Bounds, bool) {
	d.extentOnce.Do(func() {
		for _, f := range d.Features {
			b, ok := f.Bounds()
			if !ok {
				continue
			}
			if !d.hasExtent {
				d.extent, d.hasExtent = b, true
				continue
			}
			d.extent = d.extent.Union(b)
		}
	})
	return d.extent, d.hasExtent
}

// WebMercator reports whether the dataset declares EPSG:3857 or does not
// declare a CRS at all.
func (d *Dataset) WebMercator() bool {
	if d.CRS == "" {
		return true
	}
	for _, code := range []string{"3857", "900913", "102100"} {
		if strings.HasSuffix(d.CRS, ":"+code) {
			return true
		}
	}
	return false
}

// ParseDataset decodes a GeoJSON FeatureCollection whose coordinates are in
// EPSG:3857.
//
// Polygon geometries are promoted to single-polygon MultiPolygons. Other
// geometry types yield a feature with no vertices, which a pass skips.
// Coordinates are never reprojected, whatever the crs member says.
func ParseDataset(data []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}

	ds := &Dataset{
		ID:       uuid.New(),
		Features: make([]Feature, 0, len(fc.Features)),
		CRS:      crsName(fc.ExtraMembers),
		LoadedAt: time.Now(),
	}
	if ds.CRS == "" {
		ds.CRS = geometryCRSName(data)
	}

	for i, gf := range fc.Features {
		color := gf.Properties.MustString(PropertyColor, "")
		if !ValidColor(color) {
			color = DefaultColor
			ds.ColorFallbacks++
		}

		ds.Features = append(ds.Features, Feature{
			ID:       featureID(gf, i),
			Color:    NormalizeColor(color),
			Geometry: multiPolygon(gf.Geometry),
		})
	}

	return ds, nil
}

func featureID(f *geojson.Feature, index int) int64 {
	if v, ok := f.Properties[PropertyID]; ok {
		switch id := v.(type) {
		case float64:
			return int64(id)
		case int:
			return int64(id)
		}
	}
	if id, ok := f.ID.(float64); ok {
		return int64(id)
	}
	return int64(index)
}

func multiPolygon(g orb.Geometry) orb.MultiPolygon {
	switch geom := g.(type) {
	case orb.MultiPolygon:
		return geom
	case orb.Polygon:
		return orb.MultiPolygon{geom}
	default:
		return nil
	}
}

type namedCRS struct {
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

// geometryCRSName returns the first crs name found on a feature geometry.
// The geojson decoder drops members it does not know, so the crs members
// are read in a second pass.
func geometryCRSName(data []byte) string {
	var doc struct {
		Features []struct {
			Geometry struct {
				CRS *namedCRS `json:"crs"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	for _, f := range doc.Features {
		if f.Geometry.CRS != nil && f.Geometry.CRS.Properties.Name != "" {
			return f.Geometry.CRS.Properties.Name
		}
	}
	return ""
}

// crsName extracts properties.name from a legacy GeoJSON crs member.
func crsName(members geojson.Properties) string {
	crs, ok := members["crs"].(map[string]interface{})
	if !ok {
		return ""
	}
	props, ok := crs["properties"].(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := props["name"].(string)
	return name
}

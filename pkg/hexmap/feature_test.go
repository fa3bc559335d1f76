package hexmap

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/hexmap/internal/projection"
)

func TestResolutionForZoom(t *testing.T) {
	tests := []struct {
		zoom int
		want Resolution
	}{
		{-5, 3}, {0, 3}, {6, 3},
		{7, 4}, {8, 4},
		{9, 5}, {10, 5},
		{11, 6}, {12, 6},
		{13, 7}, {14, 7},
		{15, 8}, {16, 8},
		{17, 9}, {22, 9},
	}

	for _, tt := range tests {
		if got := ResolutionForZoom(tt.zoom); got != tt.want {
			t.Errorf("ResolutionForZoom(%d) = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestCentroidMeanOfProjectedVertices(t *testing.T) {
	pts := [][2]float64{{50.0, 30.0}, {50.2, 30.4}, {50.9, 31.0}}
	ring := orb.Ring{}
	var wantLat, wantLng float64
	for _, p := range pts {
		x, y := projection.FromGeodetic(p[0], p[1])
		ring = append(ring, orb.Point{x, y})
		lat, lng := projection.ToGeodetic(x, y)
		wantLat += lat
		wantLng += lng
	}
	wantLat /= float64(len(pts))
	wantLng /= float64(len(pts))

	got, ok := Centroid(Feature{Geometry: orb.MultiPolygon{{ring}}})
	if !ok {
		t.Fatal("Centroid returned no point")
	}
	if math.Abs(got.Lat-wantLat) > 1e-9 || math.Abs(got.Lng-wantLng) > 1e-9 {
		t.Errorf("Centroid = %+v, want (%v, %v)", got, wantLat, wantLng)
	}
}

func TestCentroidSquare(t *testing.T) {
	got, ok := Centroid(squareFeature(1, "", 50.45, 30.52, 0.1))
	if !ok {
		t.Fatal("Centroid returned no point")
	}
	if math.Abs(got.Lat-50.45) > 1e-9 || math.Abs(got.Lng-30.52) > 1e-9 {
		t.Errorf("Centroid = %+v, want (50.45, 30.52)", got)
	}
}

func TestCentroidNoVertices(t *testing.T) {
	tests := []struct {
		name string
		geom orb.MultiPolygon
	}{
		{"nil geometry", nil},
		{"empty polygon", orb.MultiPolygon{{}}},
		{"empty ring", orb.MultiPolygon{{orb.Ring{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Centroid(Feature{Geometry: tt.geom}); ok {
				t.Error("Centroid should be absent")
			}
		})
	}
}

func TestCentroidCountsHolesLikeOuterRings(t *testing.T) {
	outer := squareFeature(1, "", 10, 10, 1).Geometry[0][0]
	hole := squareFeature(1, "", 10.5, 10.5, 0.1).Geometry[0][0]

	got, ok := Centroid(Feature{Geometry: orb.MultiPolygon{{outer, hole}}})
	if !ok {
		t.Fatal("Centroid returned no point")
	}

	// Eight vertices, four around (10, 10) and four around (10.5, 10.5).
	if math.Abs(got.Lat-10.25) > 1e-9 || math.Abs(got.Lng-10.25) > 1e-9 {
		t.Errorf("Centroid = %+v, want (10.25, 10.25)", got)
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ABCDEF", "#ABCDEF"},
		{"#abcdef", "#abcdef"},
		{" 123 ", "#123"},
		{"", "#"},
	}
	for _, tt := range tests {
		if got := NormalizeColor(tt.in); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidColor(t *testing.T) {
	valid := []string{"ABCDEF", "#abcdef", "#123", "FFF0", "#11223344"}
	invalid := []string{"", "#", "#12", "GHIJKL", "#1234567", "red"}

	for _, c := range valid {
		if !ValidColor(c) {
			t.Errorf("ValidColor(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if ValidColor(c) {
			t.Errorf("ValidColor(%q) = true, want false", c)
		}
	}
}

func TestFeatureBounds(t *testing.T) {
	b, ok := squareFeature(1, "", 50.45, 30.52, 0.1).Bounds()
	if !ok {
		t.Fatal("Bounds returned no box")
	}
	const eps = 1e-9
	if math.Abs(b.MinLat-50.35) > eps || math.Abs(b.MaxLat-50.55) > eps ||
		math.Abs(b.MinLon-30.42) > eps || math.Abs(b.MaxLon-30.62) > eps {
		t.Errorf("Bounds = %+v", b)
	}

	if _, ok := (Feature{}).Bounds(); ok {
		t.Error("Bounds of an empty feature should be absent")
	}
}

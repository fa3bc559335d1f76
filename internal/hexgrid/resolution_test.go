package hexgrid

import "testing"

func TestResolutionForZoom(t *testing.T) {
	tests := []struct {
		zoom int
		want Resolution
	}{
		{zoom: -5, want: 3},
		{zoom: 0, want: 3},
		{zoom: 6, want: 3},
		{zoom: 7, want: 4},
		{zoom: 8, want: 4},
		{zoom: 9, want: 5},
		{zoom: 10, want: 5},
		{zoom: 11, want: 6},
		{zoom: 12, want: 6},
		{zoom: 13, want: 7},
		{zoom: 14, want: 7},
		{zoom: 15, want: 8},
		{zoom: 16, want: 8},
		{zoom: 17, want: 9},
		{zoom: 22, want: 9},
	}

	for _, tt := range tests {
		if got := ResolutionForZoom(tt.zoom); got != tt.want {
			t.Errorf("ResolutionForZoom(%d) = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestResolutionForZoomMonotonic(t *testing.T) {
	prev := ResolutionForZoom(-100)
	for z := -99; z <= 30; z++ {
		got := ResolutionForZoom(z)
		if got < prev {
			t.Fatalf("resolution decreased at zoom %d: %d < %d", z, got, prev)
		}
		if got < MinResolution || got > MaxResolution {
			t.Fatalf("resolution %d at zoom %d outside [%d, %d]", got, z, MinResolution, MaxResolution)
		}
		prev = got
	}
}

func TestResolutionValid(t *testing.T) {
	if Resolution(-1).Valid() {
		t.Error("-1 should be invalid")
	}
	if Resolution(16).Valid() {
		t.Error("16 should be invalid")
	}
	for r := Resolution(0); r <= 15; r++ {
		if !r.Valid() {
			t.Errorf("%d should be valid", r)
		}
	}
}

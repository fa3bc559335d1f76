package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/hexmap/internal/projection"
)

// writeDataset writes a one-feature collection whose vertices average to
// (lat, lng).
func writeDataset(t *testing.T, lat, lng float64) string {
	t.Helper()
	var coords []string
	for _, c := range [][2]float64{{lat - 0.05, lng - 0.05}, {lat - 0.05, lng + 0.05}, {lat + 0.05, lng + 0.05}, {lat + 0.05, lng - 0.05}} {
		x, y := projection.FromGeodetic(c[0], c[1])
		coords = append(coords, "["+formatFloat(x)+","+formatFloat(y)+"]")
	}
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature",` +
		`"properties":{"ID":1,"COLOR_HEX":"ABCDEF"},` +
		`"geometry":{"type":"MultiPolygon","coordinates":[[[` + strings.Join(coords, ",") + `]]]}}]}`

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func TestRenderCommand(t *testing.T) {
	data := writeDataset(t, 50.45, 30.52)
	out := filepath.Join(t.TempDir(), "cells.json")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"render",
		"--data", data,
		"--south", "50.0", "--west", "30.0", "--north", "50.9", "--east", "31.0",
		"--zoom", "10",
		"--out", out,
	})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	props := fc.Features[0].Properties
	assert.Equal(t, "#ABCDEF", props.MustString("color"))
	assert.Equal(t, 5, props.MustInt("resolution"))
	assert.Equal(t, 1, props.MustInt("id"))
	assert.Contains(t, stderr.String(), "resolution 5: 1 cells")
}

func TestRenderCommandRejectsInvertedViewport(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"render", "--data", "unused.json",
		"--south", "51", "--west", "30", "--north", "50", "--east", "31",
	})
	assert.Error(t, cmd.Execute())
}

func TestResolutionCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"resolution", "10"}, "5\n"},
		{[]string{"resolution", "3"}, "3\n"},
		{[]string{"resolution", "--min", "16", "--max", "17"}, "ZOOM  RESOLUTION\n  16  8\n  17  9\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var stdout bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&stdout)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRenderReadsDotEnv(t *testing.T) {
	data := writeDataset(t, 50.45, 30.52)
	out := filepath.Join(t.TempDir(), "cells.json")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HEXMAP_DATA_PATH="+data+"\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("HEXMAP_DATA_PATH", "")

	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"render",
		"--south", "50.0", "--west", "30.0", "--north", "50.9", "--east", "31.0",
		"--zoom", "10",
		"--out", out,
	})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1)
	assert.Contains(t, stderr.String(), "1 cells from 1 features")
}

func TestRenderWarnsOutsideDatasetExtent(t *testing.T) {
	data := writeDataset(t, 50.45, 30.52)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"render",
		"--data", data,
		"--south", "10.0", "--west", "10.0", "--north", "10.5", "--east", "10.5",
		"--zoom", "10",
	})
	require.NoError(t, cmd.Execute())

	fc, err := geojson.UnmarshalFeatureCollection(stdout.Bytes())
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
	assert.Contains(t, stderr.String(), "does not overlap the dataset extent")
	assert.Contains(t, stderr.String(), "resolution 5: 0 cells")
}

package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
)

func testLayer(t *testing.T) *heat.Layer {
	t.Helper()
	c := geom.NewCollection(
		geom.Feature{Name: "low", Kind: geom.KindPolygon, Rings: [][][2]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}},
		geom.Feature{Name: "high", Kind: geom.KindPolygon, Rings: [][][2]float64{{{1, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 0}}}},
	)
	l, err := heat.BuildLayer(frame.RegionValues{"low": 0, "high": 40}, c, heat.DefaultStyle())
	require.NoError(t, err)
	return l
}

func TestWriteGeoJSON(t *testing.T) {
	l := testLayer(t)
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, l))

	var out struct {
		Type     string `json:"type"`
		ID       string `json:"id"`
		CRS      string `json:"crs"`
		ZIndex   int    `json:"zIndex"`
		Features []struct {
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Type        string         `json:"type"`
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "FeatureCollection", out.Type)
	assert.Equal(t, l.ID, out.ID)
	assert.Equal(t, CRS, out.CRS)
	assert.Equal(t, 2, out.ZIndex)
	require.Len(t, out.Features, 2)

	high := out.Features[1]
	assert.Equal(t, "high", high.Properties["name"])
	assert.Equal(t, "40", high.Properties["value"])
	assert.Equal(t, "hsla(0, 100%, 50%, 0.3)", high.Properties["color"])
	assert.Equal(t, "#ff0000", high.Properties["fill"])
	assert.Equal(t, "Polygon", high.Geometry.Type)

	x, y := geom.Project(2, 1)
	assert.InDelta(t, x, high.Geometry.Coordinates[0][2][0], 1e-6)
	assert.InDelta(t, y, high.Geometry.Coordinates[0][2][1], 1e-6)
}

func TestWriteImagePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteImage(&buf, "png", testLayer(t), ImageOptions{Title: "test"}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestWriteImageSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteImage(&buf, "svg", testLayer(t), ImageOptions{Outline: 1}))
	assert.True(t, strings.Contains(buf.String(), "<svg"))
}

func TestWriteImageEmptyLayer(t *testing.T) {
	err := WriteImage(&bytes.Buffer{}, "png", &heat.Layer{}, ImageOptions{})
	assert.True(t, errors.Is(err, ErrEmptyLayer))
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.png")
	require.NoError(t, SaveImage(path, testLayer(t), ImageOptions{}))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))

	assert.Error(t, SaveImage(filepath.Join(dir, "overlay"), testLayer(t), ImageOptions{}))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "Edge load", testLayer(t)))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Edge load")
	assert.Contains(t, out, "high")
}

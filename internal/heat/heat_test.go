package heat

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
)

func square(name string, x, y float64) geom.Feature {
	return geom.Feature{
		Name: name,
		Kind: geom.KindPolygon,
		Rings: [][][2]float64{{
			{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
		}},
	}
}

func regions() *geom.Collection {
	return geom.NewCollection(
		square("r1", 0, 0),
		square("r2", 1, 0),
		square("r3", 2, 0),
		geom.Feature{Name: "line", Kind: geom.KindLineString, Line: [][2]float64{{0, 5}, {1, 5}, {1, 6}}},
		geom.Feature{Name: "pin", Kind: geom.KindPoint},
		square("", 5, 5),
	)
}

func TestBuildLayerColorRamp(t *testing.T) {
	values := frame.RegionValues{"r1": 0, "r2": math.E - 1}
	l, err := BuildLayer(values, regions(), DefaultStyle())
	require.NoError(t, err)
	require.Len(t, l.Shapes, 2)

	r1, ok := l.Shape("r1")
	require.True(t, ok)
	assert.Equal(t, 0.0, r1.Percentage)
	assert.Equal(t, "hsla(120, 100%, 50%, 0.3)", r1.Color.String())
	assert.Equal(t, "0", r1.Label)

	r2, ok := l.Shape("r2")
	require.True(t, ok)
	assert.Equal(t, 1.0, r2.Percentage)
	assert.Equal(t, "hsla(0, 100%, 50%, 0.3)", r2.Color.String())
	assert.Equal(t, map[string]string{"value": r2.Label, "color": "hsla(0, 100%, 50%, 0.3)"}, r2.Attributes())
	assert.Equal(t, r2.Color, r2.Fill())
}

func TestBuildLayerOneShapePerMatchedFeature(t *testing.T) {
	values := frame.RegionValues{"r1": 3, "r3": 10, "nowhere": 4, "line": 1}
	l, err := BuildLayer(values, regions(), DefaultStyle())
	require.NoError(t, err)

	var got []frame.RegionID
	for _, s := range l.Shapes {
		got = append(got, s.Region)
	}
	assert.Equal(t, []frame.RegionID{"r1", "r3", "line"}, got)
	assert.Empty(t, l.Skipped)

	_, ok := l.Shape("r2")
	assert.False(t, ok, "features without a value produce no shape")

	line, _ := l.Shape("line")
	require.Len(t, line.Geometry, 1)
	assert.Len(t, line.Geometry[0], 3)
}

func TestBuildLayerAllZero(t *testing.T) {
	values := frame.RegionValues{"r1": 0, "r2": 0}
	l, err := BuildLayer(values, regions(), DefaultStyle())
	require.NoError(t, err)
	for _, s := range l.Shapes {
		assert.Equal(t, 0.0, s.Percentage)
		assert.False(t, math.IsNaN(s.Color.H))
		assert.Equal(t, 120.0, s.Color.H)
	}
}

func TestBuildLayerEmptyValues(t *testing.T) {
	l, err := BuildLayer(frame.RegionValues{}, regions(), DefaultStyle())
	require.NoError(t, err)
	assert.Empty(t, l.Shapes)
	assert.Equal(t, 2, l.ZIndex)
	assert.NotEmpty(t, l.ID)
}

func TestBuildLayerIncludeUnmatched(t *testing.T) {
	style := DefaultStyle()
	style.IncludeUnmatched = true
	l, err := BuildLayer(frame.RegionValues{"r1": 9}, regions(), style)
	require.NoError(t, err)
	// r1, r2, r3 and line; the unnamed square never matches
	assert.Len(t, l.Shapes, 4)
	r2, ok := l.Shape("r2")
	require.True(t, ok)
	assert.Equal(t, "0", r2.Label)
	assert.Equal(t, 0.0, r2.Percentage)
	require.Len(t, l.Skipped, 1)
	assert.Equal(t, "pin", l.Skipped[0].Region)
	assert.True(t, errors.Is(l.Skipped[0].Err, geom.ErrUnsupportedKind))
}

func TestBuildLayerSkipsUnsupportedKind(t *testing.T) {
	l, err := BuildLayer(frame.RegionValues{"pin": 1, "r1": 1}, regions(), DefaultStyle())
	require.NoError(t, err)
	assert.Len(t, l.Shapes, 1)
	require.Len(t, l.Skipped, 1)
	assert.Equal(t, "pin", l.Skipped[0].Region)
}

func TestBuildLayerOutOfDomain(t *testing.T) {
	for _, v := range []float64{-1.5, math.NaN()} {
		_, err := BuildLayer(frame.RegionValues{"r1": v}, regions(), DefaultStyle())
		assert.True(t, errors.Is(err, ErrValueOutOfDomain), "value %v", v)
	}
	// -1 is in domain: ln(0) is -Inf and normalises to 0.
	l, err := BuildLayer(frame.RegionValues{"r1": -1, "r2": 3}, regions(), DefaultStyle())
	require.NoError(t, err)
	r1, _ := l.Shape("r1")
	assert.Equal(t, 0.0, r1.Percentage)
}

func TestBuildLayerReprojects(t *testing.T) {
	l, err := BuildLayer(frame.RegionValues{"r2": 1}, regions(), DefaultStyle())
	require.NoError(t, err)
	require.Len(t, l.Shapes, 1)
	ring := l.Shapes[0].Geometry[0]
	wantX, wantY := geom.Project(2, 1)
	assert.InDelta(t, wantX, ring[2].X, 1e-6)
	assert.InDelta(t, wantY, ring[2].Y, 1e-6)

	lon, lat := geom.Unproject(ring[2].X, ring[2].Y)
	assert.InDelta(t, 2, lon, 1e-9)
	assert.InDelta(t, 1, lat, 1e-9)

	b := l.Bounds()
	minX, _ := geom.Project(1, 0)
	assert.InDelta(t, minX, b.Min.X, 1e-6)
	assert.InDelta(t, wantX, b.Max.X, 1e-6)
}

func TestBuildLayerDoesNotMutateInputs(t *testing.T) {
	c := regions()
	before := c.Features[0].Rings[0][1]
	values := frame.RegionValues{"r1": 5}
	_, err := BuildLayer(values, c, DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, before, c.Features[0].Rings[0][1])
	assert.Equal(t, frame.RegionValues{"r1": 5}, values)
}

func TestIntensities(t *testing.T) {
	logs, maxLog, err := Intensities(frame.RegionValues{})
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Equal(t, 0.0, maxLog)

	logs, maxLog, err = Intensities(frame.RegionValues{"a": 0, "b": 99})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(100), maxLog, 1e-12)
	assert.Equal(t, 0.0, logs["a"])
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.5, Percentage(1, 2))
	assert.Equal(t, 0.0, Percentage(1, 0))
	assert.Equal(t, 0.0, Percentage(math.Inf(-1), 2))
	assert.Equal(t, 0.0, Percentage(-1, 2))
	assert.Equal(t, 1.0, Percentage(3, 2))
}

func TestStyleColors(t *testing.T) {
	s := DefaultStyle()
	require.NoError(t, s.Validate())

	mid := s.ColorAt(0.5)
	assert.Equal(t, "hsla(60, 100%, 50%, 0.3)", mid.String())
	assert.Equal(t, "#ffff00", mid.Hex())

	assert.Equal(t, "#00ff00", s.ColorAt(0).Hex())
	assert.Equal(t, "#ff0000", s.ColorAt(1).Hex())

	c := s.ColorAt(1).NRGBA()
	assert.Equal(t, uint8(255), c.R)
	assert.InDelta(t, 76.5, float64(c.A), 0.5)

	black := colorful.Color{}
	over := s.ColorAt(1).Over(black)
	assert.InDelta(t, 0.3, over.R, 1e-9)
	assert.InDelta(t, 0, over.G, 1e-9)

	custom := Style{HueLow: 240, HueHigh: 300, Saturation: 50, Lightness: 40, Alpha: 1}
	assert.Equal(t, "hsla(270, 50%, 40%, 1)", custom.ColorAt(0.5).String())
}

func TestStyleValidate(t *testing.T) {
	bad := []Style{
		{Saturation: 101, Lightness: 50, Alpha: 0.3},
		{Saturation: 100, Lightness: -1, Alpha: 0.3},
		{Saturation: 100, Lightness: 50, Alpha: 2},
		{Saturation: 100, Lightness: 50, Alpha: 0.3, HueLow: math.NaN()},
	}
	for _, s := range bad {
		assert.Error(t, s.Validate())
	}
}

package panel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
)

func regions() *geom.Collection {
	sq := func(name string, x float64) geom.Feature {
		return geom.Feature{Name: name, Kind: geom.KindPolygon, Rings: [][][2]float64{{{x, 0}, {x + 1, 0}, {x + 1, 1}, {x, 0}}}}
	}
	return geom.NewCollection(sq("r1", 0), sq("r2", 1))
}

func TestRefreshSwapsOverlay(t *testing.T) {
	p := New(regions(), heat.DefaultStyle(), "")
	assert.Nil(t, p.Layer())

	first, err := p.Refresh([]frame.Frame{
		{Name: "b r1", Values: []float64{1}},
		{Name: "a r1", Values: []float64{5}},
		{Name: "a r2", Values: []float64{0}},
		{Name: "broken", Values: []float64{3}},
	})
	require.NoError(t, err)
	assert.Equal(t, frame.GroupID("a"), p.Group(), "first group in sorted order")
	assert.Len(t, first.Shapes, 2)
	assert.Same(t, first, p.Layer())

	second, err := p.Refresh([]frame.Frame{{Name: "a r2", Values: []float64{8}}})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, p.Layer())
	assert.Len(t, second.Shapes, 1)
	assert.Equal(t, frame.ValueTable{"a": {"r2": 8}}, p.Table())
}

func TestSelectGroup(t *testing.T) {
	p := New(regions(), heat.DefaultStyle(), "")
	_, err := p.Refresh([]frame.Frame{
		{Name: "a r1", Values: []float64{1}},
		{Name: "b r2", Values: []float64{2}},
	})
	require.NoError(t, err)

	l, err := p.Select("b")
	require.NoError(t, err)
	assert.Equal(t, frame.GroupID("b"), p.Group())
	require.Len(t, l.Shapes, 1)
	assert.Equal(t, frame.RegionID("r2"), l.Shapes[0].Region)

	// selection sticks across refreshes
	_, err = p.Refresh([]frame.Frame{{Name: "b r1", Values: []float64{4}}, {Name: "a r2", Values: []float64{4}}})
	require.NoError(t, err)
	assert.Equal(t, frame.GroupID("b"), p.Group())

	l, err = p.Select("missing")
	require.NoError(t, err)
	assert.Empty(t, l.Shapes)
}

func TestRefreshErrorKeepsPreviousOverlay(t *testing.T) {
	p := New(regions(), heat.DefaultStyle(), "a")
	good, err := p.Refresh([]frame.Frame{{Name: "a r1", Values: []float64{1}}})
	require.NoError(t, err)

	_, err = p.Refresh([]frame.Frame{{Name: "a r1", Values: []float64{-5}}})
	assert.True(t, errors.Is(err, heat.ErrValueOutOfDomain))
	assert.Same(t, good, p.Layer())
}

func TestSetStyle(t *testing.T) {
	p := New(regions(), heat.DefaultStyle(), "")
	_, err := p.Refresh([]frame.Frame{{Name: "a r1", Values: []float64{1}}})
	require.NoError(t, err)

	s := heat.DefaultStyle()
	s.IncludeUnmatched = true
	l, err := p.SetStyle(s)
	require.NoError(t, err)
	assert.Len(t, l.Shapes, 2)

	s.Alpha = 4
	_, err = p.SetStyle(s)
	assert.Error(t, err)
}

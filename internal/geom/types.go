package geom

import (
	"errors"
	"fmt"
	"sort"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Empty reports whether the box has not been extended yet.
func (b BBox) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// EmptyBBox returns a box that any point will extend.
func EmptyBBox() BBox {
	return BBox{MinX: 1, MinY: 1, MaxX: -1, MaxY: -1}
}

// Extend grows the box to include pt.
func (b *BBox) Extend(pt [2]float64) {
	if b.Empty() {
		*b = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		return
	}
	if pt[0] < b.MinX {
		b.MinX = pt[0]
	}
	if pt[1] < b.MinY {
		b.MinY = pt[1]
	}
	if pt[0] > b.MaxX {
		b.MaxX = pt[0]
	}
	if pt[1] > b.MaxY {
		b.MaxY = pt[1]
	}
}

// Geometry kinds as named by GeoJSON.
const (
	KindPoint        = "Point"
	KindLineString   = "LineString"
	KindPolygon      = "Polygon"
	KindMultiPolygon = "MultiPolygon"
)

// ErrUnsupportedKind is returned for geometry kinds that cannot become a region shape.
var ErrUnsupportedKind = errors.New("unsupported geometry kind")

// Feature is one named region boundary in lon/lat (EPSG:4326).
type Feature struct {
	Name string
	Kind string

	// Rings holds polygon rings (first outer, following holes) for KindPolygon.
	Rings [][][2]float64
	// Line holds the vertices of a KindLineString.
	Line [][2]float64
}

// PolygonRings returns the feature as polygon rings. A LineString is treated
// as a single outer ring; any other kind fails with ErrUnsupportedKind.
func (f Feature) PolygonRings() ([][][2]float64, error) {
	switch f.Kind {
	case KindPolygon:
		return f.Rings, nil
	case KindLineString:
		return [][][2]float64{f.Line}, nil
	}
	return nil, fmt.Errorf("feature %q: %w: %q", f.Name, ErrUnsupportedKind, f.Kind)
}

// Collection is a read-only set of region features in source order.
type Collection struct {
	Features []Feature
	BBox     BBox
}

func (c *Collection) add(f Feature) {
	c.Features = append(c.Features, f)
	for _, ring := range f.Rings {
		for _, p := range ring {
			c.BBox.Extend(p)
		}
	}
	for _, p := range f.Line {
		c.BBox.Extend(p)
	}
}

// NewCollection builds a collection from features, computing its bbox.
func NewCollection(features ...Feature) *Collection {
	c := &Collection{BBox: EmptyBBox()}
	for _, f := range features {
		c.add(f)
	}
	return c
}

// Lookup returns the first feature with the given name.
func (c *Collection) Lookup(name string) (Feature, bool) {
	for _, f := range c.Features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// Names returns the distinct, non-empty feature names in sorted order.
func (c *Collection) Names() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range c.Features {
		if f.Name == "" || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

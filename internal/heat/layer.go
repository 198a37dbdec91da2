package heat

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	ctgeom "github.com/ctessum/geom"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
)

// ErrValueOutOfDomain is returned for values below -1 or NaN, for which
// ln(v+1) is undefined.
var ErrValueOutOfDomain = errors.New("value out of domain")

// Shape is one styled region: reprojected geometry plus its display attributes.
type Shape struct {
	Region frame.RegionID
	// Geometry is in web mercator (EPSG:3857) metres.
	Geometry ctgeom.Polygon

	Value      float64
	Percentage float64
	Label      string
	Color      Color
}

// Attributes returns the named display attributes attached to the shape.
func (s Shape) Attributes() map[string]string {
	return map[string]string{
		"value": s.Label,
		"color": s.Color.String(),
	}
}

// Fill is the colour the shape is filled with.
func (s Shape) Fill() Color { return s.Color }

// Skipped records a feature that could not become a shape.
type Skipped struct {
	Region string
	Err    error
}

// Layer is a renderable overlay. It is rebuilt from scratch on every data
// refresh; the caller swaps it in for the previous one.
type Layer struct {
	ID     string
	ZIndex int
	Shapes []Shape
	// Skipped lists matched features whose geometry kind cannot be drawn.
	Skipped []Skipped
}

// Bounds returns the projected extent of all shapes.
func (l *Layer) Bounds() *ctgeom.Bounds {
	b := ctgeom.NewBounds()
	for _, s := range l.Shapes {
		b.Extend(s.Geometry.Bounds())
	}
	return b
}

// Shape returns the shape for region, if any.
func (l *Layer) Shape(region frame.RegionID) (Shape, bool) {
	for _, s := range l.Shapes {
		if s.Region == region {
			return s, true
		}
	}
	return Shape{}, false
}

// Intensities computes ln(v+1) per region and the maximum over them. An
// empty set has max 0. Values below -1 or NaN fail with ErrValueOutOfDomain.
func Intensities(values frame.RegionValues) (map[frame.RegionID]float64, float64, error) {
	logs := make(map[frame.RegionID]float64, len(values))
	all := make([]float64, 0, len(values))
	for _, id := range values.Regions() {
		v := values[id]
		if math.IsNaN(v) || v < -1 {
			return nil, 0, fmt.Errorf("region %q: %w: %v", id, ErrValueOutOfDomain, v)
		}
		lv := math.Log(v + 1)
		logs[id] = lv
		all = append(all, lv)
	}
	if len(all) == 0 {
		return logs, 0, nil
	}
	return logs, floats.Max(all), nil
}

// Percentage normalises a log value against maxLog into [0, 1]. It is 0 when
// maxLog is not positive or the log value is not finite.
func Percentage(logValue, maxLog float64) float64 {
	if maxLog <= 0 || math.IsInf(maxLog, 0) || math.IsInf(logValue, 0) || math.IsNaN(logValue) {
		return 0
	}
	return math.Max(0, math.Min(1, logValue/maxLog))
}

// BuildLayer colours every feature of regions whose name has a value and
// returns them as a new overlay. Features without a value are dropped unless
// style.IncludeUnmatched is set; features with a geometry other than Polygon
// or LineString are listed in Layer.Skipped. Inputs are not modified.
func BuildLayer(values frame.RegionValues, regions *geom.Collection, style Style) (*Layer, error) {
	logs, maxLog, err := Intensities(values)
	if err != nil {
		return nil, err
	}
	l := &Layer{
		ID:     uuid.NewString(),
		ZIndex: style.ZIndex,
	}
	if regions == nil {
		return l, nil
	}
	for _, f := range regions.Features {
		if f.Name == "" {
			continue
		}
		id := frame.RegionID(f.Name)
		v, ok := values.Value(id)
		if !ok && !style.IncludeUnmatched {
			continue
		}
		rings, err := f.PolygonRings()
		if err != nil {
			l.Skipped = append(l.Skipped, Skipped{Region: f.Name, Err: err})
			continue
		}
		pct := 0.0
		if lv, ok := logs[id]; ok {
			pct = Percentage(lv, maxLog)
		}
		l.Shapes = append(l.Shapes, Shape{
			Region:     id,
			Geometry:   toPolygon(geom.ProjectRings(rings)),
			Value:      v,
			Percentage: pct,
			Label:      strconv.FormatFloat(v, 'f', -1, 64),
			Color:      style.ColorAt(pct),
		})
	}
	return l, nil
}

func toPolygon(rings [][][2]float64) ctgeom.Polygon {
	poly := make(ctgeom.Polygon, len(rings))
	for i, ring := range rings {
		path := make([]ctgeom.Point, len(ring))
		for j, p := range ring {
			path[j] = ctgeom.Point{X: p[0], Y: p[1]}
		}
		poly[i] = path
	}
	return poly
}

// Rings converts a shape geometry back into plain coordinate rings.
func Rings(poly ctgeom.Polygon) [][][2]float64 {
	out := make([][][2]float64, len(poly))
	for i, path := range poly {
		ring := make([][2]float64, len(path))
		for j, p := range path {
			ring[j] = [2]float64{p.X, p.Y}
		}
		out[i] = ring
	}
	return out
}

package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT parses a single WKT geometry into a named feature.
// Supported: POINT(x y), LINESTRING(x y, ...), POLYGON((x y, ...), (x y, ...)).
func ParseWKT(name, wkt string) (Feature, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Feature{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	f := Feature{Name: name}
	parseTuples := func(block string) [][2]float64 {
		var out [][2]float64
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, [2]float64{x, y})
		}
		return out
	}
	switch {
	case strings.HasPrefix(up, "MULTI"):
		return Feature{}, errors.New("wkt: multi geometries are not regions")
	case strings.HasPrefix(up, "POINT"):
		if _, _, ok := parens(s, "(", ")"); !ok {
			return Feature{}, errors.New("wkt point: invalid")
		}
		f.Kind = KindPoint
		return f, nil
	case strings.HasPrefix(up, "LINESTRING"):
		i, j, ok := parens(s, "(", ")")
		if !ok {
			return Feature{}, errors.New("wkt linestring: invalid")
		}
		f.Kind = KindLineString
		f.Line = parseTuples(s[i+1 : j])
		if len(f.Line) == 0 {
			return Feature{}, errors.New("wkt linestring: no coordinates parsed")
		}
		return f, nil
	case strings.HasPrefix(up, "POLYGON"):
		i, j, ok := parens(s, "((", "))")
		if !ok {
			return Feature{}, errors.New("wkt polygon: invalid")
		}
		// normalize spaces around ring separators
		ringsNorm := strings.ReplaceAll(s[i+2:j], "), (", "),(")
		ringsNorm = strings.ReplaceAll(ringsNorm, ") , (", "),(")
		f.Kind = KindPolygon
		for _, rp := range strings.Split(ringsNorm, "),(") {
			f.Rings = append(f.Rings, parseTuples(rp))
		}
		if len(f.Rings) == 0 || len(f.Rings[0]) == 0 {
			return Feature{}, errors.New("wkt polygon: no coordinates parsed")
		}
		return f, nil
	}
	return Feature{}, errors.New("unsupported wkt type")
}

func parens(s, lp, rp string) (int, int, bool) {
	i := strings.Index(s, lp)
	j := strings.LastIndex(s, rp)
	return i, j, i >= 0 && j > i
}

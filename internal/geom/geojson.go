package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// DefaultNameProperty is the feature property holding the region id.
const DefaultNameProperty = "name"

// LoadGeoJSON reads a GeoJSON file and returns its named region features.
func LoadGeoJSON(path, nameProp string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGeoJSON(f, nameProp)
}

// DecodeGeoJSON decodes a Feature or FeatureCollection. Every feature is kept,
// whatever its geometry kind, so that callers can report what they skip.
func DecodeGeoJSON(r io.Reader, nameProp string) (*Collection, error) {
	if nameProp == "" {
		nameProp = DefaultNameProperty
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return [2]float64{lon, lat}, true
			}
		}
		return [2]float64{}, false
	}
	parseLineString := func(v any) (ls [][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ls = append(ls, pt)
			}
		}
		return ls, true
	}
	parsePolygon := func(v any) (poly [][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, ring := range arr {
			if ls, ok := parseLineString(ring); ok {
				poly = append(poly, ls)
			}
		}
		return poly, true
	}
	toFeature := func(fm map[string]any) Feature {
		var f Feature
		if props, ok := fm["properties"].(map[string]any); ok {
			f.Name = propString(props[nameProp])
		}
		g, _ := fm["geometry"].(map[string]any)
		f.Kind, _ = g["type"].(string)
		switch f.Kind {
		case KindPolygon:
			f.Rings, _ = parsePolygon(g["coordinates"])
		case KindLineString:
			f.Line, _ = parseLineString(g["coordinates"])
		}
		return f
	}

	c := NewCollection()
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		c.add(toFeature(raw))
	case "FeatureCollection":
		fs, ok := raw["features"].([]any)
		if !ok {
			return nil, errors.New("geojson: feature collection without features")
		}
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				c.add(toFeature(fm))
			}
		}
	default:
		return nil, fmt.Errorf("geojson: unsupported type %q", t)
	}
	if len(c.Features) == 0 {
		return nil, errors.New("geojson: no features found")
	}
	return c, nil
}

func propString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

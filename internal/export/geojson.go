package export

import (
	"encoding/json"
	"io"

	"geoheat/internal/heat"
)

// CRS of every coordinate written by WriteGeoJSON.
const CRS = "EPSG:3857"

type featureCollection struct {
	Type     string    `json:"type"`
	ID       string    `json:"id,omitempty"`
	CRS      string    `json:"crs"`
	ZIndex   int       `json:"zIndex"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geometry       `json:"geometry"`
}

type geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// WriteGeoJSON writes the overlay as a FeatureCollection of polygons in web
// mercator metres. Each feature carries the shape's display attributes.
func WriteGeoJSON(w io.Writer, l *heat.Layer) error {
	fc := featureCollection{
		Type:     "FeatureCollection",
		ID:       l.ID,
		CRS:      CRS,
		ZIndex:   l.ZIndex,
		Features: make([]feature, 0, len(l.Shapes)),
	}
	for _, s := range l.Shapes {
		props := map[string]any{
			"name":        string(s.Region),
			"percentage":  s.Percentage,
			"fill":        s.Color.Hex(),
			"fillOpacity": s.Color.A,
		}
		for k, v := range s.Attributes() {
			props[k] = v
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   geometry{Type: "Polygon", Coordinates: heat.Rings(s.Geometry)},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

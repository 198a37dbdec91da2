package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadKML reads named regions from a KML file (Placemark > name with a
// Polygon or LineString). KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeKML(f)
}

func DecodeKML(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	type kmlRing struct {
		Coordinates string `xml:"LinearRing>coordinates"`
	}
	type kmlPolygon struct {
		Outer kmlRing   `xml:"outerBoundaryIs"`
		Inner []kmlRing `xml:"innerBoundaryIs"`
	}
	type kmlCoords struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name       string      `xml:"name"`
		Polygon    *kmlPolygon `xml:"Polygon"`
		LineString *kmlCoords  `xml:"LineString"`
		Point      *kmlCoords  `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Flat       []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	c := NewCollection()
	for _, pm := range append(doc.Placemarks, doc.Flat...) {
		f := Feature{Name: strings.TrimSpace(pm.Name)}
		switch {
		case pm.Polygon != nil:
			f.Kind = KindPolygon
			f.Rings = append(f.Rings, parseKMLCoords(pm.Polygon.Outer.Coordinates))
			for _, in := range pm.Polygon.Inner {
				f.Rings = append(f.Rings, parseKMLCoords(in.Coordinates))
			}
		case pm.LineString != nil:
			f.Kind = KindLineString
			f.Line = parseKMLCoords(pm.LineString.Coordinates)
		case pm.Point != nil:
			f.Kind = KindPoint
		default:
			continue
		}
		c.add(f)
	}
	if len(c.Features) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}
	return c, nil
}

// parseKMLCoords reads whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out
}

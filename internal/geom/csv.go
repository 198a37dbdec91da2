package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads regions from a CSV with a name column and a WKT column.
// Column detection (case-insensitive): name|region|id and wkt|geometry|geom.
func LoadCSV(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

func DecodeCSV(r io.Reader) (*Collection, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxName, idxWKT := -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "region", "id":
			if idxName == -1 {
				idxName = i
			}
		case "wkt", "geometry", "geom":
			if idxWKT == -1 {
				idxWKT = i
			}
		}
	}
	if idxName == -1 || idxWKT == -1 {
		return nil, errors.New("csv: name/wkt columns not found")
	}
	c := NewCollection()
	for n, row := range recs[1:] {
		if idxName >= len(row) || idxWKT >= len(row) {
			continue
		}
		f, err := ParseWKT(strings.TrimSpace(row[idxName]), row[idxWKT])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", n+2, err)
		}
		c.add(f)
	}
	if len(c.Features) == 0 {
		return nil, errors.New("csv: no regions parsed")
	}
	return c, nil
}

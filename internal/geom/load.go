package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a region collection, choosing the decoder by file extension.
func Load(path, nameProp string) (*Collection, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path, nameProp)
	case ".kml":
		return LoadKML(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		f, err := ParseWKT(name, string(data))
		if err != nil {
			return nil, err
		}
		return NewCollection(f), nil
	}
	return nil, fmt.Errorf("unsupported geometry file: %q", ext)
}

package geom

import "math"

// Spherical (web) mercator, EPSG:4326 lon/lat degrees to EPSG:3857 metres.
const (
	EarthRadius = 6378137.0
	// MaxLatitude is where the projection reaches the square extent.
	MaxLatitude = 85.0511287798066
	// HalfExtent is the projected x/y of (180, MaxLatitude).
	HalfExtent = math.Pi * EarthRadius
)

// Project maps lon/lat degrees to web mercator metres. Latitudes beyond
// MaxLatitude are clamped.
func Project(lon, lat float64) (x, y float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	x = EarthRadius * lon * math.Pi / 180
	y = EarthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return x, y
}

// Unproject is the inverse of Project.
func Unproject(x, y float64) (lon, lat float64) {
	lon = x / EarthRadius * 180 / math.Pi
	lat = (2*math.Atan(math.Exp(y/EarthRadius)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}

// ProjectRings returns a reprojected copy of rings; the input is not modified.
func ProjectRings(rings [][][2]float64) [][][2]float64 {
	out := make([][][2]float64, len(rings))
	for i, ring := range rings {
		pr := make([][2]float64, len(ring))
		for j, p := range ring {
			x, y := Project(p[0], p[1])
			pr[j] = [2]float64{x, y}
		}
		out[i] = pr
	}
	return out
}

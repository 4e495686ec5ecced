package geocluster

import "math"

// Centroid returns the spherical mean position of a set of points. Each point
// is converted to a 3-D unit vector, the vectors are averaged component-wise,
// and the result is converted back to latitude/longitude. A linear average of
// raw coordinates would misplace the mean across the ±180° longitude seam and
// near the poles; the vector form does not.
//
// An empty point set returns the {0,0} sentinel; callers must not treat it as
// a valid location.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sx, sy, sz float64
	for _, p := range points {
		lat := degToRad(p.Lat)
		lng := degToRad(p.Lng)
		sx += math.Cos(lat) * math.Cos(lng)
		sy += math.Cos(lat) * math.Sin(lng)
		sz += math.Sin(lat)
	}

	n := float64(len(points))
	x := sx / n
	y := sy / n
	z := sz / n

	hyp := math.Sqrt(x*x + y*y)
	return Point{
		Lat: radToDeg(math.Atan2(z, hyp)),
		Lng: radToDeg(math.Atan2(y, x)),
	}
}

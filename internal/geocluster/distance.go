package geocluster

import "math"

// earthRadiusMiles is the mean radius of the Earth in statute miles.
const earthRadiusMiles = 3959.0

// Distance returns the great-circle distance between two points in statute
// miles, computed with the haversine formula.
func Distance(a, b Point) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// Bearing returns the initial compass bearing from one point to another,
// in degrees normalized to [0, 360).
func Bearing(from, to Point) float64 {
	lat1 := degToRad(from.Lat)
	lat2 := degToRad(to.Lat)
	dLng := degToRad(to.Lng - from.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	deg := radToDeg(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// bearingDiff returns the smallest angle between two bearings, in [0, 180].
func bearingDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

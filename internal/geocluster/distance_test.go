package geocluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	nyc := Point{Lat: 40.7128, Lng: -74.0060}
	la := Point{Lat: 34.0522, Lng: -118.2437}

	tests := []struct {
		name  string
		a, b  Point
		miles float64
		delta float64
	}{
		{name: "same point", a: nyc, b: nyc, miles: 0, delta: 1e-9},
		{name: "nyc to la", a: nyc, b: la, miles: 2445, delta: 15},
		{name: "one degree of longitude at equator", a: Point{}, b: Point{Lng: 1}, miles: 69.1, delta: 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.miles, Distance(tt.a, tt.b), tt.delta)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := Point{Lat: 12.5, Lng: -33.2}
	b := Point{Lat: -48.1, Lng: 101.7}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	assert.Positive(t, Distance(a, b))
}

func TestBearing(t *testing.T) {
	origin := Point{}

	tests := []struct {
		name string
		to   Point
		deg  float64
	}{
		{name: "due north", to: Point{Lat: 1}, deg: 0},
		{name: "due east", to: Point{Lng: 1}, deg: 90},
		{name: "due south", to: Point{Lat: -1}, deg: 180},
		{name: "due west", to: Point{Lng: -1}, deg: 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.deg, Bearing(origin, tt.to), 1e-6)
		})
	}
}

func TestBearingDiff(t *testing.T) {
	assert.InDelta(t, 20, bearingDiff(350, 10), 1e-9)
	assert.InDelta(t, 20, bearingDiff(10, 350), 1e-9)
	assert.InDelta(t, 180, bearingDiff(0, 180), 1e-9)
	assert.InDelta(t, 0, bearingDiff(45, 45), 1e-9)
}

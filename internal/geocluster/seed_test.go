package geocluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spreadPoints() []Point {
	points := make([]Point, 0, 20)
	for i := 0; i < 10; i++ {
		points = append(points, Point{Lat: 40 + float64(i)*0.01, Lng: -74 + float64(i)*0.01})
		points = append(points, Point{Lat: 34 + float64(i)*0.01, Lng: -118 + float64(i)*0.01})
	}
	return points
}

func TestSeedCentroids_CountAndMembership(t *testing.T) {
	points := spreadPoints()
	rng := rand.New(rand.NewSource(7))

	seeds := seedCentroids(points, 4, rng)
	require.Len(t, seeds, 4)

	for _, s := range seeds {
		found := false
		for _, p := range points {
			if p == s {
				found = true
				break
			}
		}
		assert.True(t, found, "seed %+v is not an input point", s)
	}
}

func TestSeedCentroids_Deterministic(t *testing.T) {
	points := spreadPoints()

	a := seedCentroids(points, 3, rand.New(rand.NewSource(42)))
	b := seedCentroids(points, 3, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestSeedCentroids_SingleSeed(t *testing.T) {
	points := spreadPoints()
	seeds := seedCentroids(points, 1, rand.New(rand.NewSource(1)))
	require.Len(t, seeds, 1)
}

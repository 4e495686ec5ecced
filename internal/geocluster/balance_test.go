package geocluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unevenPair builds one over-full cluster of 8 close to the home base and an
// adjacent cluster of 2 farther out, on a shared east-west line.
func unevenPair() []Cluster {
	var big []Point
	for i := 0; i < 8; i++ {
		big = append(big, Point{Lat: 0, Lng: 1.0 + float64(i)*0.1})
	}
	small := []Point{
		{Lat: 0, Lng: 1.8},
		{Lat: 0, Lng: 2.6},
	}
	return []Cluster{newCluster(big), newCluster(small)}
}

func TestBalance_NoOpBelowThreshold(t *testing.T) {
	clusters := balance(unevenPair(), 10, Point{}, 0.3)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Points, 8)
	assert.Len(t, clusters[1].Points, 2)
}

func TestBalance_MovesBoundaryPoints(t *testing.T) {
	clusters := balance(unevenPair(), 10, Point{}, 0.9)
	require.Len(t, clusters, 2)

	// Boundary points migrate outward until the pair is even; the receiver's
	// 1.5x p95 radius keeps admitting the next-nearest boundary point here.
	assert.Len(t, clusters[0].Points, 5)
	assert.Len(t, clusters[1].Points, 5)

	// Centroids must be recomputed after the moves.
	for _, c := range clusters {
		assert.InDelta(t, Centroid(c.Points).Lng, c.Centroid.Lng, 1e-9)
	}
}

func TestBalance_RespectsReceiverRadius(t *testing.T) {
	// The receiving cluster is tight and far away: even its nearest donor
	// point lies outside 1.5x the receiver's p95 radius, so nothing moves.
	var big []Point
	for i := 0; i < 8; i++ {
		big = append(big, Point{Lat: 0, Lng: 0.9 + float64(i)*0.02})
	}
	tight := []Point{
		{Lat: 0, Lng: 4.95},
		{Lat: 0, Lng: 5.05},
	}
	clusters := balance([]Cluster{newCluster(big), newCluster(tight)}, 10, Point{}, 0.9)

	assert.Len(t, clusters[0].Points, 8)
	assert.Len(t, clusters[1].Points, 2)
}

func TestBalance_SingleClusterUntouched(t *testing.T) {
	clusters := balance(unevenPair()[:1], 10, Point{}, 0.9)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Points, 8)
}

package geocluster

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterPoints_EmptyInput(t *testing.T) {
	out, err := ClusterPoints(nil, Point{}, DefaultConfig(5))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClusterPoints_CapacityPrecondition(t *testing.T) {
	_, err := ClusterPoints([]Point{{Lat: 1, Lng: 1}}, Point{}, DefaultConfig(0))
	assert.Error(t, err)
}

func TestClusterPoints_SinglePoint(t *testing.T) {
	p := Point{Lat: 40.7128, Lng: -74.0060, ID: "hq"}
	out, err := ClusterPoints([]Point{p}, Point{}, DefaultConfig(5))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].ID)
	require.Len(t, out[0].Points, 1)
	assert.Equal(t, "hq", out[0].Points[0].ID)
	assert.InDelta(t, p.Lat, out[0].Centroid.Lat, 1e-9)
	assert.InDelta(t, p.Lng, out[0].Centroid.Lng, 1e-9)
}

func TestClusterPoints_UnderCapacityShortCircuit(t *testing.T) {
	points := []Point{
		{Lat: 0, Lng: 0, ID: "a"},
		{Lat: 0, Lng: 0.001, ID: "b"},
		{Lat: 10, Lng: 10, ID: "c"},
	}
	out, err := ClusterPoints(points, Point{}, DefaultConfig(10))
	require.NoError(t, err)
	require.Len(t, out, 1, "everything fits under capacity, no split needed")
	assert.Len(t, out[0].Points, 3)
}

func TestClusterPoints_DoesNotAliasCallerSlice(t *testing.T) {
	points := []Point{
		{Lat: 0, Lng: 0, ID: "a"},
		{Lat: 0, Lng: 0.1, ID: "b"},
	}
	out, err := ClusterPoints(points, Point{}, DefaultConfig(10))
	require.NoError(t, err)

	out[0].Points[0].ID = "mutated"
	assert.Equal(t, "a", points[0].ID)
}

func regionPoints(n int) []Point {
	rng := rand.New(rand.NewSource(17))
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, Point{
			Lat: 36 + rng.Float64()*3,
			Lng: -82 + rng.Float64()*3,
			ID:  fmt.Sprintf("fac-%03d", i),
		})
	}
	return points
}

func TestClusterPoints_Invariants(t *testing.T) {
	points := regionPoints(40)
	home := Point{Lat: 37.5, Lng: -80.5}

	cfg := DefaultConfig(7)
	cfg.Rand = rand.New(rand.NewSource(42))

	out, err := ClusterPoints(points, home, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	seen := map[string]int{}
	total := 0
	for i, c := range out {
		// Dense ids 0..N-1.
		assert.Equal(t, i, c.ID)

		// Capacity bound after the full pipeline.
		assert.LessOrEqual(t, len(c.Points), 7)
		assert.NotEmpty(t, c.Points)
		total += len(c.Points)

		// Centroid equals the spherical mean of the current points.
		want := Centroid(c.Points)
		assert.InDelta(t, want.Lat, c.Centroid.Lat, 1e-9)
		assert.InDelta(t, want.Lng, c.Centroid.Lng, 1e-9)

		for _, p := range c.Points {
			seen[p.ID]++
		}
	}

	// Every input point exactly once: no loss, no duplication.
	assert.Equal(t, len(points), total)
	for _, p := range points {
		assert.Equal(t, 1, seen[p.ID], "point %s", p.ID)
	}
}

func TestClusterPoints_DeterministicWithFixedSeed(t *testing.T) {
	points := regionPoints(30)
	home := Point{Lat: 37.5, Lng: -80.5}

	run := func() []Cluster {
		cfg := DefaultConfig(6)
		cfg.Rand = rand.New(rand.NewSource(99))
		out, err := ClusterPoints(points, home, cfg)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, run(), run())
}

func TestClusterPoints_BalanceWeightDisablesBalancer(t *testing.T) {
	points := regionPoints(25)
	home := Point{Lat: 37.5, Lng: -80.5}

	for _, bw := range []float64{0.3, 0.9} {
		cfg := DefaultConfig(6)
		cfg.BalanceWeight = bw
		cfg.Rand = rand.New(rand.NewSource(4))

		out, err := ClusterPoints(points, home, cfg)
		require.NoError(t, err)
		total := 0
		for _, c := range out {
			assert.LessOrEqual(t, len(c.Points), 6)
			total += len(c.Points)
		}
		assert.Equal(t, 25, total, "balanceWeight=%v", bw)
	}
}

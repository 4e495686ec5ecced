package geocluster

import (
	"math/rand"
	"sort"
)

const (
	// Sub-clusters of an overloaded cluster are re-partitioned with a fixed,
	// deliberately high tightness: they must come out compact.
	splitTightness     = 0.8
	splitMaxIterations = 30
)

// splitOverloaded re-clusters every group exceeding capacity into
// ceil(size/capacity) sub-groups, balances the sub-groups, and recurses until
// everything fits. Groups already within capacity pass through unchanged. The
// whole output runs through the cohesion validator and comes back densely
// renumbered; size balance and geographic cohesion are independent concerns,
// so validation happens even when nothing needed splitting.
func splitOverloaded(clusters []Cluster, capacity int, homeBase Point, balanceWeight float64, rng *rand.Rand) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Points) <= capacity {
			out = append(out, c)
			continue
		}
		out = append(out, splitCluster(c, capacity, homeBase, balanceWeight, rng)...)
	}
	return validateCohesion(out, homeBase)
}

// splitCluster breaks one overloaded cluster into sub-clusters within
// capacity, recursing when the weighted partition leaves a sub-cluster
// over-full.
func splitCluster(c Cluster, capacity int, homeBase Point, balanceWeight float64, rng *rand.Rand) []Cluster {
	subCount := (len(c.Points) + capacity - 1) / capacity

	subs := partition(c.Points, subCount, splitMaxIterations, splitTightness, rng)
	subs = balance(subs, capacity, homeBase, balanceWeight)

	if len(subs) == 1 && len(subs[0].Points) > capacity {
		// Partitioning could not pull the points apart (coincident
		// coordinates); fall back to even chunks so the capacity bound
		// still holds.
		subs = chunkEvenly(subs[0], subCount)
	}

	out := make([]Cluster, 0, len(subs))
	for _, s := range subs {
		if len(s.Points) == 0 {
			continue
		}
		if len(s.Points) > capacity {
			out = append(out, splitCluster(s, capacity, homeBase, balanceWeight, rng)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// chunkEvenly splits a cluster into n chunks in centroid-distance order.
func chunkEvenly(c Cluster, n int) []Cluster {
	points := append([]Point(nil), c.Points...)
	sort.SliceStable(points, func(i, j int) bool {
		return Distance(points[i], c.Centroid) < Distance(points[j], c.Centroid)
	})

	size := (len(points) + n - 1) / n
	out := make([]Cluster, 0, n)
	for start := 0; start < len(points); start += size {
		end := start + size
		if end > len(points) {
			end = len(points)
		}
		chunk := append([]Point(nil), points[start:end]...)
		out = append(out, Cluster{Centroid: Centroid(chunk), Points: chunk})
	}
	return out
}

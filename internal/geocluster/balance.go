package geocluster

import (
	"math"
	"sort"
)

const (
	// balanceThreshold is the balance weight below which balancing is
	// disabled entirely, favoring geographic purity over even sizing.
	balanceThreshold = 0.6

	// radiusPercentile and radiusSlack bound how far a moved point may sit
	// from the receiving cluster's centroid: 1.5× its 95th-percentile
	// point-to-centroid distance.
	radiusPercentile = 0.95
	radiusSlack      = 1.5
)

// balance evens out cluster sizes by moving boundary points from over-full
// clusters to adjacent under-full ones. Clusters are ordered by centroid
// distance from the home base and points only move from a cluster to the next
// one in that ordering, never to a non-adjacent target; downstream sequencing
// depends on the resulting distance-ordered cluster list. A move is allowed
// only while the receiving cluster stays within its own existing spread, so
// balancing cannot smear a compact cluster across the map.
//
// Below balanceThreshold the pass is a no-op.
func balance(clusters []Cluster, capacity int, homeBase Point, balanceWeight float64) []Cluster {
	if balanceWeight < balanceThreshold || len(clusters) < 2 {
		return clusters
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return Distance(clusters[i].Centroid, homeBase) < Distance(clusters[j].Centroid, homeBase)
	})

	total := 0
	for _, c := range clusters {
		total += len(c.Points)
	}
	avg := float64(total) / float64(len(clusters))

	for i := 0; i+1 < len(clusters); i++ {
		cur := &clusters[i]
		next := &clusters[i+1]

		for float64(len(cur.Points)) > avg &&
			len(next.Points) < capacity &&
			len(cur.Points) > len(next.Points)+1 {

			ci := nearestPointIndex(cur.Points, next.Centroid)
			allowed := radiusSlack * percentileRadius(next.Points, next.Centroid, radiusPercentile)
			if Distance(cur.Points[ci], next.Centroid) > allowed {
				// The nearest candidate is already outside the
				// receiver's spread; no farther point can do better.
				break
			}

			p := cur.Points[ci]
			cur.Points = append(cur.Points[:ci], cur.Points[ci+1:]...)
			next.Points = append(next.Points, p)
			cur.Centroid = Centroid(cur.Points)
			next.Centroid = Centroid(next.Points)
		}
	}

	return clusters
}

// nearestPointIndex returns the index of the point closest to target.
func nearestPointIndex(points []Point, target Point) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, p := range points {
		if d := Distance(p, target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// percentileRadius returns the pct-percentile point-to-centroid distance.
func percentileRadius(points []Point, centroid Point, pct float64) float64 {
	if len(points) == 0 {
		return 0
	}
	dists := make([]float64, len(points))
	for i, p := range points {
		dists[i] = Distance(p, centroid)
	}
	sort.Float64s(dists)
	idx := int(math.Ceil(pct*float64(len(dists)))) - 1
	if idx < 0 {
		idx = 0
	}
	return dists[idx]
}

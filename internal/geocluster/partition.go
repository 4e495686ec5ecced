package geocluster

import (
	"math"
	"math/rand"
)

// convergenceShiftMiles is the centroid movement below which an iteration
// round counts as converged.
const convergenceShiftMiles = 0.001

// partition assigns points to k clusters with a tightness-weighted k-means
// loop. The assignment score is distance^(1+4·tightness), so tightness 0 is
// plain nearest-centroid and tightness 1 strongly penalizes points far from a
// centroid, producing compact groups at the cost of possibly uneven sizes.
//
// The loop stops when every centroid moves at most convergenceShiftMiles in a
// round, or after maxIter rounds. Seeds that attract no points are dropped
// from the result. If len(points) <= k every point becomes its own singleton
// cluster without any iteration.
func partition(points []Point, k, maxIter int, tightness float64, rng *rand.Rand) []Cluster {
	if len(points) <= k {
		clusters := make([]Cluster, len(points))
		for i, p := range points {
			clusters[i] = Cluster{ID: i, Centroid: Point{Lat: p.Lat, Lng: p.Lng}, Points: []Point{p}}
		}
		return clusters
	}

	seeds := seedCentroids(points, k, rng)
	clusters := make([]Cluster, k)
	for i, s := range seeds {
		clusters[i] = Cluster{ID: i, Centroid: Point{Lat: s.Lat, Lng: s.Lng}}
	}

	exponent := 1 + 4*tightness
	for iter := 0; iter < maxIter; iter++ {
		for i := range clusters {
			clusters[i].Points = clusters[i].Points[:0]
		}

		for _, p := range points {
			best := 0
			bestScore := math.MaxFloat64
			for i := range clusters {
				score := math.Pow(Distance(p, clusters[i].Centroid), exponent)
				if score < bestScore {
					best = i
					bestScore = score
				}
			}
			clusters[best].Points = append(clusters[best].Points, p)
		}

		converged := true
		for i := range clusters {
			// An empty cluster keeps its previous centroid this round.
			if len(clusters[i].Points) == 0 {
				continue
			}
			next := Centroid(clusters[i].Points)
			if Distance(clusters[i].Centroid, next) > convergenceShiftMiles {
				converged = false
			}
			clusters[i].Centroid = next
		}
		if converged {
			break
		}
	}

	return renumber(clusters)
}

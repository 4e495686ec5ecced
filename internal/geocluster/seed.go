package geocluster

import (
	"math"
	"math/rand"
)

// seedCentroids picks k initial centroids from points using k-means++.
// The first centroid is chosen uniformly at random; each subsequent one is
// chosen with probability proportional to the squared distance to its nearest
// already-chosen centroid. Spreading seeds this way keeps two of them from
// landing in the same geographic region and starving another.
//
// Requires len(points) >= k and k >= 1.
func seedCentroids(points []Point, k int, rng *rand.Rand) []Point {
	n := len(points)
	centroids := make([]Point, 0, k)
	centroids = append(centroids, points[rng.Intn(n)])

	weights := make([]float64, n)
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			nearest := math.MaxFloat64
			for _, c := range centroids {
				d := Distance(p, c)
				if sq := d * d; sq < nearest {
					nearest = sq
				}
			}
			weights[i] = nearest
			total += nearest
		}

		// Roulette-wheel selection over cumulative squared distance.
		threshold := rng.Float64() * total
		chosen := -1
		cum := 0.0
		for i, w := range weights {
			cum += w
			if cum >= threshold {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			// Floating-point rounding exhausted the cumulative weight
			// without a pick; fall back to a deterministic index.
			chosen = len(centroids) * n / k
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

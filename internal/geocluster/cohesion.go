package geocluster

import (
	"math"
	"sort"
)

const (
	// maxBearingSpanDeg is the widest fan of bearings (seen from the home
	// base) a single cluster may cover before it is split. A cluster wider
	// than this straddles the depot, which ruins a one-way daily loop.
	maxBearingSpanDeg = 100.0

	// stretchRatio flags a cluster as stretched when its farthest point sits
	// more than this multiple of the mean point-to-centroid distance out.
	stretchRatio = 3.0
)

// validateCohesion post-processes a cluster set for geographic sanity. A
// cluster whose farthest member is a distance outlier is bisected at the
// median distance; a cluster whose members fan out more than
// maxBearingSpanDeg around the home base is split by bearing. The result is
// densely renumbered from 0. A set that already passes both checks comes back
// unchanged.
func validateCohesion(clusters []Cluster, homeBase Point) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Points) <= 1 {
			out = append(out, c)
			continue
		}
		if halves, ok := splitStretched(c); ok {
			out = append(out, halves...)
			continue
		}
		if halves, ok := splitByBearing(c, homeBase); ok {
			out = append(out, halves...)
			continue
		}
		out = append(out, c)
	}
	return renumber(out)
}

// splitStretched bisects a cluster with a distance outlier into a close half
// and a far half, sorted on distance to the centroid and cut at the median.
func splitStretched(c Cluster) ([]Cluster, bool) {
	dists := make([]float64, len(c.Points))
	var sum, max float64
	for i, p := range c.Points {
		d := Distance(p, c.Centroid)
		dists[i] = d
		sum += d
		if d > max {
			max = d
		}
	}
	mean := sum / float64(len(c.Points))
	if max <= stretchRatio*mean {
		return nil, false
	}

	order := make([]int, len(c.Points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return dists[order[i]] < dists[order[j]] })

	mid := len(order) / 2
	close := make([]Point, 0, mid)
	far := make([]Point, 0, len(order)-mid)
	for i, idx := range order {
		if i < mid {
			close = append(close, c.Points[idx])
		} else {
			far = append(far, c.Points[idx])
		}
	}

	return []Cluster{
		{Centroid: Centroid(close), Points: close},
		{Centroid: Centroid(far), Points: far},
	}, true
}

// splitByBearing splits a cluster whose points span more than
// maxBearingSpanDeg of compass bearing around the home base. Points within
// 90° of the midpoint bearing of the extremes form one cluster, the rest the
// other.
func splitByBearing(c Cluster, homeBase Point) ([]Cluster, bool) {
	bearings := make([]float64, len(c.Points))
	minB := math.MaxFloat64
	maxB := -math.MaxFloat64
	for i, p := range c.Points {
		b := Bearing(homeBase, p)
		bearings[i] = b
		if b < minB {
			minB = b
		}
		if b > maxB {
			maxB = b
		}
	}

	raw := maxB - minB
	span := raw
	if 360-raw < span {
		span = 360 - raw
	}
	if span <= maxBearingSpanDeg {
		return nil, false
	}

	// Midpoint bearing of the two extremes.
	mid := (minB + maxB) / 2

	var near, farSide []Point
	for i, p := range c.Points {
		if bearingDiff(bearings[i], mid) < 90 {
			near = append(near, p)
		} else {
			farSide = append(farSide, p)
		}
	}
	if len(near) == 0 || len(farSide) == 0 {
		return nil, false
	}

	return []Cluster{
		{Centroid: Centroid(near), Points: near},
		{Centroid: Centroid(farSide), Points: farSide},
	}, true
}

package geocluster

import (
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Defaults for Config fields left at their zero value where zero is not a
// meaningful setting.
const (
	DefaultTightness     = 0.5
	DefaultBalanceWeight = 0.35
	DefaultMaxIterations = 50
)

// Config tunes a clustering run.
type Config struct {
	// MaxPointsPerCluster is the hard cap a downstream day/team can visit.
	// Must be >= 1.
	MaxPointsPerCluster int

	// Tightness in [0,1] controls the partitioner's assignment exponent:
	// higher produces more compact, possibly less balanced groups.
	Tightness float64

	// BalanceWeight in [0,1] controls the balancer. Below 0.6 balancing is
	// disabled entirely.
	BalanceWeight float64

	// MaxIterations caps the partitioner loop; <= 0 means
	// DefaultMaxIterations. Hitting the cap is not an error, the loop just
	// returns the best state reached.
	MaxIterations int

	// Rand is the randomness source for k-means++ seeding. Tests inject a
	// fixed-seed generator for reproducible output; nil means time-seeded.
	Rand *rand.Rand
}

// DefaultConfig returns a Config with the standard tuning for the given
// per-cluster capacity.
func DefaultConfig(maxPointsPerCluster int) Config {
	return Config{
		MaxPointsPerCluster: maxPointsPerCluster,
		Tightness:           DefaultTightness,
		BalanceWeight:       DefaultBalanceWeight,
		MaxIterations:       DefaultMaxIterations,
	}
}

// ClusterPoints groups facility locations into geographically coherent
// clusters of at most cfg.MaxPointsPerCluster points each. homeBase is the
// depot the teams start from; it anchors the bearing-based cohesion checks
// and the balancer's distance ordering.
//
// Every input point appears in exactly one output cluster, every centroid is
// the spherical mean of its cluster's current points, and cluster ids form a
// dense range 0..N-1. Edge cases degrade silently: empty input returns an
// empty list, and when the points already fit under the capacity a single
// cluster comes back without any clustering work.
func ClusterPoints(points []Point, homeBase Point, cfg Config) ([]Cluster, error) {
	if cfg.MaxPointsPerCluster < 1 {
		return nil, eris.Errorf("geocluster: max points per cluster must be >= 1, got %d", cfg.MaxPointsPerCluster)
	}

	if len(points) == 0 {
		return []Cluster{}, nil
	}

	// Own the point set; splitting and balancing must never touch the
	// caller's slice.
	owned := append([]Point(nil), points...)

	if len(owned) <= cfg.MaxPointsPerCluster {
		return []Cluster{{ID: 0, Centroid: Centroid(owned), Points: owned}}, nil
	}

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	k := (len(owned) + cfg.MaxPointsPerCluster - 1) / cfg.MaxPointsPerCluster

	clusters := partition(owned, k, maxIter, cfg.Tightness, rng)
	clusters = balance(clusters, cfg.MaxPointsPerCluster, homeBase, cfg.BalanceWeight)
	clusters = splitOverloaded(clusters, cfg.MaxPointsPerCluster, homeBase, cfg.BalanceWeight, rng)

	zap.L().Debug("clustered points",
		zap.String("component", "geocluster"),
		zap.Int("points", len(owned)),
		zap.Int("clusters", len(clusters)),
		zap.Int("capacity", cfg.MaxPointsPerCluster),
	)

	return clusters, nil
}

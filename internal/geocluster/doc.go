// Package geocluster turns an unordered set of facility locations into
// geographically coherent, size-bounded visit groups, one per day or team.
//
// The pipeline is a tightness-weighted k-means with k-means++ seeding and a
// spherical centroid, followed by a size balancer, a recursive overload
// splitter, and a bearing-based cohesion validator. It is purely synchronous
// and holds no state between calls; concurrent calls with disjoint inputs are
// safe as long as each supplies its own Config.Rand.
package geocluster

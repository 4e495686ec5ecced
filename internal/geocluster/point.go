package geocluster

// Point is a geographic coordinate with an optional caller-supplied ID.
// The ID is carried through clustering untouched so callers can re-associate
// clustered points with their source records.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	ID  string  `json:"id,omitempty"`
}

// Cluster is one visit group: a centroid and the points assigned to it.
// A cluster owns its point slice; it never aliases the caller's input.
// IDs in any returned cluster set are a dense range 0..N-1.
type Cluster struct {
	ID       int     `json:"id"`
	Centroid Point   `json:"centroid"`
	Points   []Point `json:"points"`
}

// renumber drops empty clusters and assigns dense ids starting at 0.
// Clusters produced by a split carry no meaningful id until this pass runs.
func renumber(clusters []Cluster) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Points) == 0 {
			continue
		}
		c.ID = len(out)
		out = append(out, c)
	}
	return out
}

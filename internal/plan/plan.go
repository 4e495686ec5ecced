package plan

import (
	"github.com/sells-group/fieldops-cli/internal/facility"
	"github.com/sells-group/fieldops-cli/internal/geocluster"
)

// Day is one visit group: the facilities a single team covers in one day.
type Day struct {
	Day        int                 `json:"day"`
	Centroid   geocluster.Point    `json:"centroid"`
	Facilities []facility.Facility `json:"facilities"`
	Stats      Stats               `json:"stats"`
}

// Stats summarizes the geographic shape of a day's group.
type Stats struct {
	Facilities        int     `json:"facilities"`
	MeanCentroidMiles float64 `json:"mean_centroid_miles"`
	MaxCentroidMiles  float64 `json:"max_centroid_miles"`
	HomeBaseMiles     float64 `json:"home_base_miles"`
}

// Plan is a full visit plan for one region.
type Plan struct {
	Region   string           `json:"region,omitempty"`
	HomeBase geocluster.Point `json:"home_base"`
	Days     []Day            `json:"days"`
}

// Build assembles a Plan from engine output, resolving clustered point ids
// back to their facility records. Points whose id has no matching facility
// are carried as bare coordinate records so the plan never silently loses a
// site.
func Build(clusters []geocluster.Cluster, byID map[string]facility.Facility, homeBase geocluster.Point) Plan {
	days := make([]Day, 0, len(clusters))
	for _, c := range clusters {
		facilities := make([]facility.Facility, 0, len(c.Points))
		var sum, max float64
		for _, p := range c.Points {
			f, ok := byID[p.ID]
			if !ok {
				f = facility.Facility{Lat: p.Lat, Lng: p.Lng}
			}
			facilities = append(facilities, f)

			d := geocluster.Distance(p, c.Centroid)
			sum += d
			if d > max {
				max = d
			}
		}

		mean := 0.0
		if len(c.Points) > 0 {
			mean = sum / float64(len(c.Points))
		}

		days = append(days, Day{
			Day:        c.ID,
			Centroid:   c.Centroid,
			Facilities: facilities,
			Stats: Stats{
				Facilities:        len(facilities),
				MeanCentroidMiles: mean,
				MaxCentroidMiles:  max,
				HomeBaseMiles:     geocluster.Distance(c.Centroid, homeBase),
			},
		})
	}

	return Plan{HomeBase: homeBase, Days: days}
}

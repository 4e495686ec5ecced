package facility

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/fieldops-cli/internal/geocluster"
)

// Facility is one site a field team can visit.
type Facility struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
}

// Points converts facilities to engine points, carrying the facility UUID as
// the point id so clustered points can be matched back to their records.
func Points(facilities []Facility) []geocluster.Point {
	points := make([]geocluster.Point, len(facilities))
	for i, f := range facilities {
		points[i] = geocluster.Point{Lat: f.Lat, Lng: f.Lng, ID: f.ID.String()}
	}
	return points
}

// ByID indexes facilities by their UUID string.
func ByID(facilities []Facility) map[string]Facility {
	m := make(map[string]Facility, len(facilities))
	for _, f := range facilities {
		m[f.ID.String()] = f
	}
	return m
}

var titleCaser = cases.Title(language.AmericanEnglish)

// normalizeName trims and title-cases an imported facility name. Upstream
// exports frequently arrive all-caps.
func normalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if s == strings.ToUpper(s) || s == strings.ToLower(s) {
		return titleCaser.String(strings.ToLower(s))
	}
	return s
}

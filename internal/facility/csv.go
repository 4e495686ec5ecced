package facility

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ParseCSV reads a facility export CSV. Required columns: Name, Latitude,
// Longitude. Optional: ID (UUID; generated when absent or invalid) and
// Address. Rows with missing or unparseable coordinates are skipped, not
// fatal; duplicate IDs keep the first occurrence.
func ParseCSV(path string) ([]Facility, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "facility: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "facility: read csv")
	}
	if len(records) < 2 {
		return nil, eris.New("facility: csv has no data rows")
	}

	header := records[0]
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}

	for _, col := range []string{"Name", "Latitude", "Longitude"} {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("facility: missing required column %q", col)
		}
	}

	seen := make(map[uuid.UUID]bool)
	var facilities []Facility
	var skipped int

	for _, row := range records[1:] {
		lat, latErr := strconv.ParseFloat(getCol(row, colIdx, "Latitude"), 64)
		lng, lngErr := strconv.ParseFloat(getCol(row, colIdx, "Longitude"), 64)
		if latErr != nil || lngErr != nil {
			skipped++
			continue
		}

		id, err := uuid.Parse(getCol(row, colIdx, "ID"))
		if err != nil {
			id = uuid.New()
		}
		if seen[id] {
			skipped++
			continue
		}
		seen[id] = true

		facilities = append(facilities, Facility{
			ID:      id,
			Name:    normalizeName(getCol(row, colIdx, "Name")),
			Address: getCol(row, colIdx, "Address"),
			Lat:     lat,
			Lng:     lng,
		})
	}

	if skipped > 0 {
		zap.L().Debug("skipped csv rows",
			zap.String("component", "facility.csv"),
			zap.Int("skipped", skipped),
		)
	}

	return facilities, nil
}

func getCol(row []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

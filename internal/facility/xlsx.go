package facility

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// XLSXOptions configures the XLSX facility reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads facilities from an XLSX worksheet using the same column
// contract as ParseCSV: Name, Latitude, Longitude required, ID and Address
// optional.
func ReadXLSX(path string, opts XLSXOptions) ([]Facility, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "facility: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) < 2 {
		return nil, eris.New("facility: xlsx sheet has no data rows")
	}

	header := rowToStrings(sheet.Rows[0])
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

	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)

		lat, latErr := strconv.ParseFloat(getCol(cells, colIdx, "Latitude"), 64)
		lng, lngErr := strconv.ParseFloat(getCol(cells, colIdx, "Longitude"), 64)
		if latErr != nil || lngErr != nil {
			skipped++
			continue
		}

		id, err := uuid.Parse(getCol(cells, colIdx, "ID"))
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
			Name:    normalizeName(getCol(cells, colIdx, "Name")),
			Address: getCol(cells, colIdx, "Address"),
			Lat:     lat,
			Lng:     lng,
		})
	}

	if skipped > 0 {
		zap.L().Debug("skipped xlsx rows",
			zap.String("component", "facility.xlsx"),
			zap.Int("skipped", skipped),
		)
	}

	return facilities, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("facility: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("facility: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

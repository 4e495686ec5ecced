package plan

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// WriteJSON writes the plan as indented JSON.
func WriteJSON(w io.Writer, p Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return eris.Wrap(err, "plan: encode json")
	}
	return nil
}

var csvHeader = []string{"Day", "Facility ID", "Name", "Address", "Latitude", "Longitude"}

// WriteCSV writes one row per facility, grouped by day.
func WriteCSV(w io.Writer, p Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "plan: write csv header")
	}

	for _, day := range p.Days {
		for _, f := range day.Facilities {
			row := []string{
				strconv.Itoa(day.Day),
				f.ID.String(),
				f.Name,
				f.Address,
				strconv.FormatFloat(f.Lat, 'f', -1, 64),
				strconv.FormatFloat(f.Lng, 'f', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return eris.Wrap(err, "plan: write csv row")
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "plan: flush csv")
	}
	return nil
}

// WriteXLSX writes a workbook with one sheet per day plus a summary sheet.
func WriteXLSX(path string, p Plan) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "plan: add summary sheet")
	}
	header := summary.AddRow()
	for _, col := range []string{"Day", "Facilities", "Mean Centroid Miles", "Max Centroid Miles", "Home Base Miles"} {
		header.AddCell().SetString(col)
	}
	for _, day := range p.Days {
		row := summary.AddRow()
		row.AddCell().SetInt(day.Day)
		row.AddCell().SetInt(day.Stats.Facilities)
		row.AddCell().SetFloat(day.Stats.MeanCentroidMiles)
		row.AddCell().SetFloat(day.Stats.MaxCentroidMiles)
		row.AddCell().SetFloat(day.Stats.HomeBaseMiles)
	}

	for _, day := range p.Days {
		sheet, err := f.AddSheet(fmt.Sprintf("Day %d", day.Day))
		if err != nil {
			return eris.Wrapf(err, "plan: add sheet for day %d", day.Day)
		}
		header := sheet.AddRow()
		for _, col := range csvHeader[1:] {
			header.AddCell().SetString(col)
		}
		for _, fac := range day.Facilities {
			row := sheet.AddRow()
			row.AddCell().SetString(fac.ID.String())
			row.AddCell().SetString(fac.Name)
			row.AddCell().SetString(fac.Address)
			row.AddCell().SetFloat(fac.Lat)
			row.AddCell().SetFloat(fac.Lng)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "plan: save xlsx")
	}
	return nil
}

// WriteGeoJSON writes a FeatureCollection: one point feature per facility
// tagged with its day, plus one feature per day centroid and one for the home
// base, ready to drop onto a map.
func WriteGeoJSON(w io.Writer, p Plan) error {
	var fc geojson.FeatureCollection

	fc.Features = append(fc.Features, &geojson.Feature{
		Geometry: geom.NewPointFlat(geom.XY, []float64{p.HomeBase.Lng, p.HomeBase.Lat}),
		Properties: map[string]interface{}{
			"kind": "home_base",
		},
	})

	for _, day := range p.Days {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{day.Centroid.Lng, day.Centroid.Lat}),
			Properties: map[string]interface{}{
				"kind": "centroid",
				"day":  day.Day,
			},
		})
		for _, f := range day.Facilities {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       f.ID.String(),
				Geometry: geom.NewPointFlat(geom.XY, []float64{f.Lng, f.Lat}),
				Properties: map[string]interface{}{
					"kind": "facility",
					"day":  day.Day,
					"name": f.Name,
				},
			})
		}
	}

	if err := json.NewEncoder(w).Encode(&fc); err != nil {
		return eris.Wrap(err, "plan: encode geojson")
	}
	return nil
}

package facility

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ReadShapefile reads point features from a shapefile. The NAME attribute is
// required; ADDRESS is optional. Non-point shapes and points outside valid
// lat/lng range are skipped with a debug log, not treated as fatal, since
// survey exports often mix feature types.
func ReadShapefile(path string) ([]Facility, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "facility: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, "NAME")
	addressIdx := fieldIndex(reader, "ADDRESS")
	if nameIdx < 0 {
		return nil, eris.New("facility: required shapefile field NAME not found")
	}

	var facilities []Facility
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		point, ok := shape.(*shp.Point)
		if !ok {
			skipped++
			continue
		}
		if point.Y < -90 || point.Y > 90 || point.X < -180 || point.X > 180 {
			skipped++
			continue
		}

		address := ""
		if addressIdx >= 0 {
			address = strings.TrimSpace(reader.Attribute(addressIdx))
		}

		facilities = append(facilities, Facility{
			ID:      uuid.New(),
			Name:    normalizeName(reader.Attribute(nameIdx)),
			Address: address,
			// Shapefiles store lng/lat as X/Y.
			Lat: point.Y,
			Lng: point.X,
		})
	}

	if skipped > 0 {
		zap.L().Debug("skipped non-point shapes",
			zap.String("component", "facility.shapefile"),
			zap.Int("skipped", skipped),
		)
	}

	return facilities, nil
}

// fieldIndex returns the index of a named DBF field, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		fieldName := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(fieldName, name) {
			return i
		}
	}
	return -1
}

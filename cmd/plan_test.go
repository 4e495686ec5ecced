package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fieldops-cli/internal/geocluster"
	"github.com/sells-group/fieldops-cli/internal/plan"
)

func TestExtOf(t *testing.T) {
	assert.Equal(t, "csv", extOf("regions/east.csv"))
	assert.Equal(t, "json", extOf("east.plan.json"))
	assert.Equal(t, "", extOf("noext"))
}

func TestRegionLabel(t *testing.T) {
	assert.Equal(t, "east", regionLabel("regions/east.csv"))
	assert.Equal(t, "west", regionLabel("west.xlsx"))
	assert.Equal(t, "plain", regionLabel("plain"))
}

func TestLoadFacilitiesUnsupported(t *testing.T) {
	_, err := loadFacilities("sites.kml")
	assert.Error(t, err)
}

func TestLoadFacilitiesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Latitude,Longitude\nDepot,35.0,-80.0\n"), 0644))

	facilities, err := loadFacilities(path)
	require.NoError(t, err)
	require.Len(t, facilities, 1)
	assert.Equal(t, "Depot", facilities[0].Name)
}

func TestWritePlanJSONFile(t *testing.T) {
	p := plan.Plan{
		Region:   "test",
		HomeBase: geocluster.Point{Lat: 35.0, Lng: -80.0},
	}
	out := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, writePlan(p, out, "json"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var round plan.Plan
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Equal(t, "test", round.Region)
}

func TestWritePlanErrors(t *testing.T) {
	p := plan.Plan{}
	assert.Error(t, writePlan(p, "", "xlsx"), "xlsx needs an output path")
	assert.Error(t, writePlan(p, filepath.Join(t.TempDir(), "x"), "tsv"))
}

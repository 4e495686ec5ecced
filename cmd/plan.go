package main

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fieldops-cli/internal/facility"
	"github.com/sells-group/fieldops-cli/internal/geocluster"
	"github.com/sells-group/fieldops-cli/internal/plan"
)

var (
	planInput    string
	planOutput   string
	planFormat   string
	planRegion   string
	planCapacity int
	planTight    float64
	planBalance  float64
	planMaxIter  int
	planSeed     int64
	planHomeLat  float64
	planHomeLng  float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Cluster facilities into daily visit groups",
	Long: `Reads facility locations and groups them into geographically coherent
visit groups of bounded size, one per day/team.

Input format is detected from the file extension (.csv, .xlsx, .shp).

Examples:
  # Plan from a CSV export, 8 facilities per day, JSON to stdout
  fieldops-cli plan --input facilities.csv --home-lat 36.1 --home-lng -80.2

  # Tighter groups, GeoJSON for the map view
  fieldops-cli plan --input sites.shp --tightness 0.8 --format geojson --output plan.geojson`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		facilities, err := loadFacilities(planInput)
		if err != nil {
			return err
		}
		if len(facilities) == 0 {
			return eris.Errorf("plan: no facilities in %s", planInput)
		}
		zap.L().Info("loaded facilities",
			zap.String("input", planInput),
			zap.Int("count", len(facilities)),
		)

		clusters, err := runEngine(facilities)
		if err != nil {
			return err
		}

		p := plan.Build(clusters, facility.ByID(facilities), homeBase())
		p.Region = planRegion

		return writePlan(p, planOutput, planFormat)
	},
}

func homeBase() geocluster.Point {
	return geocluster.Point{Lat: planHomeLat, Lng: planHomeLng}
}

// runEngine applies config defaults under any flag the caller left unset.
func runEngine(facilities []facility.Facility) ([]geocluster.Cluster, error) {
	capacity := planCapacity
	if capacity == 0 {
		capacity = cfg.Cluster.Capacity
	}
	tightness := planTight
	if tightness < 0 {
		tightness = cfg.Cluster.Tightness
	}
	balanceWeight := planBalance
	if balanceWeight < 0 {
		balanceWeight = cfg.Cluster.BalanceWeight
	}
	maxIter := planMaxIter
	if maxIter == 0 {
		maxIter = cfg.Cluster.MaxIterations
	}

	engineCfg := geocluster.Config{
		MaxPointsPerCluster: capacity,
		Tightness:           tightness,
		BalanceWeight:       balanceWeight,
		MaxIterations:       maxIter,
	}
	if planSeed != 0 {
		engineCfg.Rand = rand.New(rand.NewSource(planSeed))
	}

	return geocluster.ClusterPoints(facility.Points(facilities), homeBase(), engineCfg)
}

// loadFacilities picks the reader from the input file extension.
func loadFacilities(path string) ([]facility.Facility, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return facility.ParseCSV(path)
	case ".xlsx":
		return facility.ReadXLSX(path, facility.XLSXOptions{})
	case ".shp":
		return facility.ReadShapefile(path)
	default:
		return nil, eris.Errorf("plan: unsupported input format %q", filepath.Ext(path))
	}
}

// writePlan writes a plan to the given path (stdout when empty) in the given
// format.
func writePlan(p plan.Plan, output, format string) error {
	if format == "xlsx" {
		if output == "" {
			return eris.New("plan: xlsx output requires --output")
		}
		return plan.WriteXLSX(output, p)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrap(err, "plan: create output file")
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "", "json":
		return plan.WriteJSON(w, p)
	case "csv":
		return plan.WriteCSV(w, p)
	case "geojson":
		return plan.WriteGeoJSON(w, p)
	default:
		return eris.Errorf("plan: unsupported output format %q", format)
	}
}

func init() {
	planCmd.Flags().StringVar(&planInput, "input", "", "facility file (.csv, .xlsx, .shp)")
	planCmd.Flags().StringVar(&planOutput, "output", "", "output path (default stdout)")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json, csv, xlsx, geojson")
	planCmd.Flags().StringVar(&planRegion, "region", "", "region label for the plan")
	planCmd.Flags().IntVar(&planCapacity, "capacity", 0, "max facilities per day (default from config)")
	planCmd.Flags().Float64Var(&planTight, "tightness", -1, "cluster compactness 0..1 (default from config)")
	planCmd.Flags().Float64Var(&planBalance, "balance-weight", -1, "size balancing 0..1, under 0.6 disables (default from config)")
	planCmd.Flags().IntVar(&planMaxIter, "max-iterations", 0, "partitioner iteration cap (default from config)")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "fixed random seed for reproducible plans (0 = random)")
	planCmd.Flags().Float64Var(&planHomeLat, "home-lat", 0, "home base latitude")
	planCmd.Flags().Float64Var(&planHomeLng, "home-lng", 0, "home base longitude")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

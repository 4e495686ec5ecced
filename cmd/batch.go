package main

import (
	"math/rand"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/fieldops-cli/internal/facility"
	"github.com/sells-group/fieldops-cli/internal/geocluster"
	"github.com/sells-group/fieldops-cli/internal/plan"
)

var (
	batchConcurrency int
	batchSuffix      string
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Plan several regions concurrently",
	Long: `Runs the planner over many facility files at once, writing one plan
JSON next to each input. Each region is an independent clustering run, so the
files are processed concurrently.

Example:
  fieldops-cli batch --home-lat 36.1 --home-lng -80.2 regions/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)

		var succeeded, failed atomic.Int64

		for _, input := range args {
			input := input
			g.Go(func() error {
				if err := planOneRegion(input); err != nil {
					failed.Add(1)
					zap.L().Error("region plan failed",
						zap.String("input", input),
						zap.Error(err),
					)
					// Keep going; the summary reports failures.
					return nil
				}
				succeeded.Add(1)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		zap.L().Info("batch complete",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
		)
		if failed.Load() > 0 {
			return eris.Errorf("batch: %d of %d regions failed", failed.Load(), len(args))
		}
		return nil
	},
}

func planOneRegion(input string) error {
	facilities, err := loadFacilities(input)
	if err != nil {
		return err
	}
	if len(facilities) == 0 {
		return eris.Errorf("batch: no facilities in %s", input)
	}

	engineCfg := geocluster.Config{
		MaxPointsPerCluster: cfg.Cluster.Capacity,
		Tightness:           cfg.Cluster.Tightness,
		BalanceWeight:       cfg.Cluster.BalanceWeight,
		MaxIterations:       cfg.Cluster.MaxIterations,
	}
	if planSeed != 0 {
		// Each region gets its own generator; the engine is safe for
		// concurrent runs only with disjoint randomness sources.
		engineCfg.Rand = rand.New(rand.NewSource(planSeed))
	}

	clusters, err := geocluster.ClusterPoints(facility.Points(facilities), homeBase(), engineCfg)
	if err != nil {
		return err
	}

	p := plan.Build(clusters, facility.ByID(facilities), homeBase())
	p.Region = regionLabel(input)

	output := strings.TrimSuffix(input, "."+extOf(input)) + batchSuffix
	return writePlan(p, output, "json")
}

func regionLabel(input string) string {
	base := input
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, "."+extOf(base))
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return ""
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "regions planned in parallel")
	batchCmd.Flags().StringVar(&batchSuffix, "suffix", ".plan.json", "output filename suffix")
	batchCmd.Flags().Float64Var(&planHomeLat, "home-lat", 0, "home base latitude")
	batchCmd.Flags().Float64Var(&planHomeLng, "home-lng", 0, "home base longitude")
	batchCmd.Flags().Int64Var(&planSeed, "seed", 0, "fixed random seed for reproducible plans (0 = random)")
	rootCmd.AddCommand(batchCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/fieldops-cli/internal/config"
	"github.com/sells-group/fieldops-cli/internal/geocluster"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the clustering engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(cfg),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// clusterRequest is the POST /api/cluster body. Tuning fields are pointers so
// an omitted field falls back to the server's configured default.
type clusterRequest struct {
	Points              []geocluster.Point `json:"points"`
	HomeBase            geocluster.Point   `json:"home_base"`
	MaxPointsPerCluster int                `json:"max_points_per_cluster"`
	Tightness           *float64           `json:"tightness,omitempty"`
	BalanceWeight       *float64           `json:"balance_weight,omitempty"`
}

type clusterResponse struct {
	Clusters []geocluster.Cluster `json:"clusters"`
}

func newRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Post("/api/cluster", func(w http.ResponseWriter, req *http.Request) {
		var body clusterRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		capacity := body.MaxPointsPerCluster
		if capacity == 0 {
			capacity = cfg.Cluster.Capacity
		}
		engineCfg := geocluster.Config{
			MaxPointsPerCluster: capacity,
			Tightness:           cfg.Cluster.Tightness,
			BalanceWeight:       cfg.Cluster.BalanceWeight,
			MaxIterations:       cfg.Cluster.MaxIterations,
		}
		if body.Tightness != nil {
			engineCfg.Tightness = *body.Tightness
		}
		if body.BalanceWeight != nil {
			engineCfg.BalanceWeight = *body.BalanceWeight
		}

		clusters, err := geocluster.ClusterPoints(body.Points, body.HomeBase, engineCfg)
		if err != nil {
			zap.L().Warn("cluster request rejected", zap.Error(err))
			http.Error(w, `{"error":"invalid cluster parameters"}`, http.StatusUnprocessableEntity)
			return
		}

		zap.L().Info("cluster request served",
			zap.Int("points", len(body.Points)),
			zap.Int("clusters", len(clusters)),
		)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(clusterResponse{Clusters: clusters})
	})

	return r
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

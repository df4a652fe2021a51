package cli

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/internal/api"
	"github.com/matzehuels/statesearch/pkg/metrics"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		stores     storeFlags
		addr       string
		maxTimeout time.Duration
		noMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve starts the JSON API (POST /v1/solve, POST /v1/compare, GET /v1/runs)
with Prometheus metrics at /metrics.

Set STATESEARCH_REDIS_URL to share cached solutions through Redis and
STATESEARCH_MONGO_URI to record runs in MongoDB.`,
		Example: `  statesearch serve --addr :8080
  curl -s localhost:8080/v1/solve -d '{"start":"2,4,3,7,1,6,5,_,8","strategy":"astar"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), stores)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := api.Config{Runner: runner, Logger: c.Logger, MaxTimeout: maxTimeout}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				m := metrics.New(reg)
				m.Install()
				cfg.Metrics = m.Handler()
			}
			return api.New(cfg).ListenAndServe(cmd.Context(), addr)
		},
	}

	stores.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&maxTimeout, "max-timeout", api.DefaultMaxTimeout, "upper bound for per-request timeouts")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doktorkwiecien79/portfolio/internal/api"
	"github.com/doktorkwiecien79/portfolio/internal/api/handlers"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api <source>...",
	Short: "Start the portfolio API server",
	Long: `Loads the given sources once and serves returns and statistics over HTTP.

Endpoints:
  GET  /health           - Health check
  GET  /api/returns      - Daily return table
  GET  /api/assets       - Per-asset mean and standard deviation
  POST /api/statistics   - {"weights":{"AAPL":0.6,"MSFT":0.4},"risk_free_rate":0}

Example:
  go run ./cmd/portfolio api AAPL.csv MSFT.csv
  go run ./cmd/portfolio api AAPL.csv MSFT.csv --port 9090`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port, overrides PORT")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx, args, func(cfg *config.Config) {
		if apiPort != "" {
			cfg.Port = apiPort
		}
	})
	if err != nil {
		return err
	}
	defer s.Close()

	handler := handlers.NewPortfolioHandler(s.sim, s.cfg.Stats.RiskFreeRate, s.log)
	router := api.NewRouter(handler, s.cfg, s.log)
	server := api.New(s.cfg, s.log, router)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n✅ Server running on http://localhost:%s\n", s.cfg.Port)
	fmt.Fprintln(out, "\nAvailable endpoints:")
	fmt.Fprintln(out, "  GET  /health")
	fmt.Fprintln(out, "  GET  /api/returns")
	fmt.Fprintln(out, "  GET  /api/assets")
	fmt.Fprintln(out, "  POST /api/statistics")
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	s.log.Info("Server stopped")
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/pieforge/pieforge/internal/server"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart pipeline over HTTP",
		Long: `Serve starts an HTTP server with a minimal API:

  POST /api/render   compute a chart (JSON body: pipeline options + format)
  GET  /healthz      liveness check
  GET  /version      build information`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache, redisURL)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			return server.New(runner, c.Logger).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis cache URL (redis://host:port/db)")
	return cmd
}

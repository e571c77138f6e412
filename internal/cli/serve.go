package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/isomers/pkg/server"
)

// serveCommand creates the serve command, which exposes the counters over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree counts over a JSON HTTP API",
		Long: `Serve the counters over HTTP:

  GET /trees/{vertices}?degree=4
  GET /rooted/{vertices}?branching=3
  GET /partitions/{sum}?parts=4&max=9&limit=100
  GET /table?max=20&degrees=1,2,3,4
  GET /healthz
  GET /version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			runner, closeCache, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			srv := server.New(runner, c.Logger, server.Options{
				Workers:        c.Config.Server.Workers,
				RequestTimeout: c.Config.Server.RequestTimeout.Duration,
			})
			c.Logger.Debug("starting server", "cache", c.Config.Cache.Backend, "workers", c.Config.Server.Workers)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

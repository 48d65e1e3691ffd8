package cli

import (
	"github.com/BartekS5/uilm/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if addr == "" {
				addr = app.Config.ServerAddr()
			}
			srv := server.New(store, server.Options{
				MaxFileBytes:   app.Config.MaxFileBytes,
				RateLimitRPS:   app.Config.RateLimitRPS,
				RateLimitBurst: app.Config.RateLimitBurst,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default UILM_SERVER_HOST:UILM_SERVER_PORT)")
	return cmd
}

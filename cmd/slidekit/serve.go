package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/slidekit/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Start the HTTP remote control",
	Long: `Starts the deck as an HTTP remote control.

Routes: GET /state, GET /events (server-sent states), POST /next, /previous, /back,
/force, /goto/{index} and /complete/{slideID}. Prometheus metrics are served on /metrics.

By default a connected client reports completion signals through /complete.
With --emulate, transitions complete on their own after each slide's delay.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.Serve(opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (env SLIDEKIT_HTTP_ADDR)")
	serveCmd.Flags().Bool("emulate", false, "Complete transitions with the stage emulator")
}

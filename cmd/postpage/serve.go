package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve post pages over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, rf)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default \":3000\")")
	cmd.Flags().Bool("watch", false, "re-import the content file when it changes")
	return cmd
}

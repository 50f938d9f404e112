package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write every post page, the home page, sitemap and feed to the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, rf)
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.Build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "built %d pages into %s\n", res.Pages, app.Config.OutputDir)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "output directory (default \"public\")")
	cmd.Flags().Int("workers", 0, "pages rendered in parallel (default 4)")
	return cmd
}

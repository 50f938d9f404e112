package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/postpage"
)

func newImportCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load pre-rendered posts from a YAML or JSON file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rf)
			if err != nil {
				return err
			}
			store, err := postpage.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := postpage.ImportFile(store, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts into %s, removed %d\n", res.Saved, cfg.DatabasePath, res.Removed)
			return nil
		},
	}
}

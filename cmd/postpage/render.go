package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/postpage"
	"github.com/eringen/postpage/views"
)

// propsDocument is the input of the render command: the query result, the
// page context and the location, as a page would receive them.
type propsDocument struct {
	Data        any `json:"data"`
	PageContext any `json:"pageContext"`
	Location    any `json:"location"`
}

func newRenderCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render <props.json>",
		Short: "Render one post page from a JSON props document (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rf)
			if err != nil {
				return err
			}
			logger, err := newLogger(rf.logLevel)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var doc propsDocument
			if err := json.NewDecoder(r).Decode(&doc); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			props, issues := postpage.DecodeProps(doc.Data, doc.PageContext, doc.Location)
			for _, is := range issues {
				if is.Missing() {
					logger.Debugf("%s defaulted", is)
				} else {
					logger.Warnf("%s, defaulted", is)
				}
			}
			page := postpage.AssembleProps(props)
			return views.Post(cfg, page).Render(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

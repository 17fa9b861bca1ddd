package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinematch/internal/app"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	var filter string
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.openApp(cmd.Context(), func(a *app.App) error {
				titles := a.Catalog.Titles(filter, limit)
				if jsonOut {
					return writeJSON(cmd, titles)
				}
				out := cmd.OutOrStdout()
				if len(titles) == 0 {
					fmt.Fprintln(out, "No titles match")
					return nil
				}
				for _, title := range titles {
					fmt.Fprintln(out, title)
				}
				return nil
			}, app.WithoutPosters())
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only list titles containing this text (case-insensitive)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of titles (0 lists all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit titles as a JSON array")
	return cmd
}

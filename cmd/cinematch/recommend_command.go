package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinematch/internal/app"
	"cinematch/internal/recommend"
	"cinematch/internal/services"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var (
		k         int
		by        string
		jsonOut   bool
		compact   bool
		long      bool
		noPosters bool
	)

	cmd := &cobra.Command{
		Use:     "recommend <movie, actor or director>",
		Aliases: []string{"search"},
		Short:   "Recommend movies similar to a title, or by an actor or director",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := recommend.ParseMode(by)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("k") && k <= 0 {
				return services.Wrap(services.ErrValidation, "cli", "recommend", fmt.Sprintf("k must be positive, got %d", k), nil)
			}
			req := recommend.Request{
				Query: joinArgs(args),
				K:     k,
				Mode:  mode,
			}

			var opts []app.Option
			if noPosters || compact {
				opts = append(opts, app.WithoutPosters())
			}

			return ctx.openApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Search(cmd.Context(), req, compact)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, result)
				}
				renderResult(cmd.OutOrStdout(), result, renderOptions{compact: compact, long: long})
				return nil
			}, opts...)
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "Number of recommendations (defaults to recommend.limit)")
	cmd.Flags().StringVar(&by, "by", "auto", "Search by auto, movie, actor or director")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print titles only using recommend.compact_limit")
	cmd.Flags().BoolVar(&long, "long", false, "Print every field of each recommendation")
	cmd.Flags().BoolVar(&noPosters, "no-posters", false, "Skip poster lookups and use the placeholder")
	return cmd
}

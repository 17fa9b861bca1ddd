package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinematch/internal/logging"
	"cinematch/internal/poster"
	"cinematch/internal/services"
)

type posterReport struct {
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Provider    string `json:"provider"`
	PosterURL   string `json:"poster_url"`
	Placeholder bool   `json:"placeholder"`
}

func newPosterCommand(ctx *commandContext) *cobra.Command {
	var year string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "poster <title>",
		Short: "Look up the poster URL for a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinArgs(args)
			if title == "" {
				return services.Wrap(services.ErrValidation, "cli", "poster", "title is required", nil)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			svc, err := poster.NewServiceFromConfig(cfg, logger)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "cli", "poster", "poster service", err)
			}
			defer func() {
				if cerr := svc.Close(); cerr != nil {
					logger.Warn("close poster service", logging.Error(cerr))
				}
			}()

			year = strings.TrimSpace(year)
			url := svc.Lookup(cmd.Context(), title, year)
			report := posterReport{
				Title:       title,
				Year:        year,
				Provider:    cfg.Poster.Provider,
				PosterURL:   url,
				Placeholder: url == svc.Placeholder(),
			}
			if jsonOut {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.PosterURL)
			if report.Placeholder {
				fmt.Fprintln(cmd.ErrOrStderr(), "No poster found; showing the placeholder")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&year, "year", "y", "", "Release year to narrow the lookup")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the lookup as JSON")
	return cmd
}

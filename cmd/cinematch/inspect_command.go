package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cinematch/internal/app"
	"cinematch/internal/catalog"
	"cinematch/internal/presenter"
)

type inspectReport struct {
	Entries         int           `json:"entries"`
	Actors          int           `json:"actors"`
	Directors       int           `json:"directors"`
	Uncredited      int           `json:"uncredited"`
	SimilarityShape [2]int        `json:"similarity_shape"`
	PosterProvider  string        `json:"poster_provider"`
	PostersEnabled  bool          `json:"posters_enabled"`
	PosterCache     *int          `json:"poster_cache_entries,omitempty"`
	Sample          []sampleEntry `json:"sample"`
}

type sampleEntry struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Year     string `json:"year"`
	Director string `json:"director"`
	Cast     string `json:"cast"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var sample int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the loaded catalog and similarity artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.openApp(cmd.Context(), func(a *app.App) error {
				report, err := buildInspectReport(cmd, a, sample)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, report)
				}
				printInspectReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 5, "Number of catalog entries to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}

func buildInspectReport(cmd *cobra.Command, a *app.App, sample int) (inspectReport, error) {
	stats := a.Catalog.Stats()
	size := a.Scores.Size()
	report := inspectReport{
		Entries:         stats.Entries,
		Actors:          stats.Actors,
		Directors:       stats.Directors,
		Uncredited:      stats.Uncredited,
		SimilarityShape: [2]int{size, size},
		PosterProvider:  a.Config.Poster.Provider,
		PostersEnabled:  a.Posters.Enabled(),
		Sample:          []sampleEntry{},
	}

	count, ok, err := a.Posters.StoredCount(cmd.Context())
	if err != nil {
		return report, fmt.Errorf("count poster cache: %w", err)
	}
	if ok {
		report.PosterCache = &count
	}

	for pos := 0; pos < sample && pos < a.Catalog.Len(); pos++ {
		entry, err := a.Catalog.EntryAt(pos)
		if err != nil {
			return report, err
		}
		report.Sample = append(report.Sample, describeSample(entry))
	}
	return report, nil
}

func describeSample(entry catalog.Entry) sampleEntry {
	_, year := presenter.ReleaseDate(entry.ReleaseDate)
	return sampleEntry{
		Position: entry.Position,
		Title:    entry.Title,
		Year:     year,
		Director: entry.Director,
		Cast:     strings.Join(entry.Cast, ", "),
	}
}

func printInspectReport(cmd *cobra.Command, report inspectReport) {
	out := cmd.OutOrStdout()
	cacheValue := "disabled"
	if report.PosterCache != nil {
		cacheValue = strconv.Itoa(*report.PosterCache)
	}
	fmt.Fprintln(out, renderTable([]tableColumn{
		{header: "Metric"},
		{header: "Value", align: alignRight},
	}, [][]string{
		{"Catalog entries", strconv.Itoa(report.Entries)},
		{"Distinct actors", strconv.Itoa(report.Actors)},
		{"Distinct directors", strconv.Itoa(report.Directors)},
		{"Entries without credits", strconv.Itoa(report.Uncredited)},
		{"Similarity shape", fmt.Sprintf("%d x %d", report.SimilarityShape[0], report.SimilarityShape[1])},
		{"Poster provider", report.PosterProvider},
		{"Poster lookups", yesNo(report.PostersEnabled)},
		{"Poster cache entries", cacheValue},
	}))

	if len(report.Sample) == 0 {
		return
	}
	rows := make([][]string, 0, len(report.Sample))
	for _, s := range report.Sample {
		rows = append(rows, []string{strconv.Itoa(s.Position), s.Title, s.Year, s.Director, s.Cast})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]tableColumn{
		{header: "Pos", align: alignRight},
		{header: "Title", width: 40},
		{header: "Year"},
		{header: "Director", width: 24},
		{header: "Cast", width: 60},
	}, rows))
}

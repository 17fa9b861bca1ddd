package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"cinematch/internal/recommend"
)

const (
	ansiBold   = "\033[1m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func headline(message string, colorize bool) string {
	if colorize {
		return ansiBold + message + ansiReset
	}
	return message
}

type renderOptions struct {
	compact bool
	long    bool
}

// renderResult writes a search outcome in human form.
func renderResult(out io.Writer, result *recommend.Result, opts renderOptions) {
	colorize := shouldColorize(out)
	fmt.Fprintln(out, headline(result.Message, colorize))

	switch result.Kind {
	case recommend.KindSuggestions:
		for _, suggestion := range result.Suggestions {
			line := "  - " + suggestion
			if colorize {
				line = "  - " + ansiYellow + suggestion + ansiReset
			}
			fmt.Fprintln(out, line)
		}
		return
	case recommend.KindUnresolved:
		return
	}

	if opts.compact || len(result.Records) == 0 {
		for i, title := range result.Titles {
			fmt.Fprintf(out, "%d. %s\n", i+1, title)
		}
		return
	}

	if opts.long {
		for i, rec := range result.Records {
			fmt.Fprintf(out, "\n%d. %s (%s)\n", i+1, rec.Title, rec.ReleaseYear)
			fmt.Fprintf(out, "   Director: %s\n", rec.Director)
			fmt.Fprintf(out, "   Released: %s\n", rec.ReleaseDate)
			fmt.Fprintf(out, "   Rating:   %s\n", rec.Rating)
			if rec.Cast != "" {
				fmt.Fprintf(out, "   Cast:     %s\n", rec.Cast)
			}
			fmt.Fprintf(out, "   %s\n", rec.Overview)
			fmt.Fprintf(out, "   Poster:   %s\n", rec.PosterURL)
			fmt.Fprintf(out, "   Search:   %s\n", rec.SearchURL)
		}
		return
	}

	rows := make([][]string, 0, len(result.Records))
	for i, rec := range result.Records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Title,
			rec.ReleaseYear,
			rec.Director,
			rec.Rating,
			rec.Cast,
		})
	}
	fmt.Fprintln(out, renderTable([]tableColumn{
		{header: "#", align: alignRight},
		{header: "Title", width: 40},
		{header: "Year"},
		{header: "Director", width: 24},
		{header: "Rating", align: alignRight},
		{header: "Cast", width: 48},
	}, rows))
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

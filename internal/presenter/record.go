package presenter

import (
	"fmt"
	"strings"

	"cinematch/internal/catalog"
	"cinematch/internal/textutil"
)

const (
	// NotAvailable stands in for absent dates, years and ratings.
	NotAvailable = "N/A"
	// NoOverview replaces a missing synopsis.
	NoOverview = "No overview available"
	// OverviewLimit is the synopsis length kept before truncation.
	OverviewLimit = 150
	// CastExcerptSize is the number of cast names shown.
	CastExcerptSize = 3
)

// Record is the display form of one movie.
type Record struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseDate string `json:"release_date"`
	ReleaseYear string `json:"release_year"`
	Rating      string `json:"rating"`
	Overview    string `json:"overview"`
	Cast        string `json:"cast"`
	SearchURL   string `json:"search_url"`
	PosterURL   string `json:"poster_url"`
}

// Describe formats every field of entry except the poster.
func Describe(entry catalog.Entry) Record {
	date, year := ReleaseDate(entry.ReleaseDate)
	director := entry.Director
	if director == "" {
		director = catalog.UnknownDirector
	}
	return Record{
		Title:       entry.Title,
		Director:    director,
		ReleaseDate: date,
		ReleaseYear: year,
		Rating:      Rating(entry.VoteAverage),
		Overview:    Overview(entry.Overview),
		Cast:        CastExcerpt(entry.Cast),
		SearchURL:   SearchURL(entry.Title),
	}
}

// ReleaseDate returns the date verbatim and the text before its first '-'.
// A date without '-' is its own year. Only an empty cell is N/A.
func ReleaseDate(raw string) (date, year string) {
	if raw == "" {
		return NotAvailable, NotAvailable
	}
	year, _, _ = strings.Cut(raw, "-")
	return raw, year
}

// Rating renders a vote average as "7.2/10".
func Rating(vote *float64) string {
	if vote == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f/10", *vote)
}

// Overview truncates the synopsis or supplies the fallback for an empty cell.
func Overview(text string) string {
	if text == "" {
		return NoOverview
	}
	return textutil.Truncate(text, OverviewLimit)
}

// CastExcerpt joins the leading cast names.
func CastExcerpt(cast []string) string {
	if len(cast) > CastExcerptSize {
		cast = cast[:CastExcerptSize]
	}
	return strings.Join(cast, ", ")
}

// SearchURL builds the web search link for a title.
func SearchURL(title string) string {
	return "https://www.google.com/search?q=" + strings.ReplaceAll(title, " ", "+") + "+movie"
}

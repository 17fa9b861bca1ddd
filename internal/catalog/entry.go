package catalog

// UnknownDirector marks a movie without a credited director.
const UnknownDirector = "N/A"

// MaxCast is the number of leading cast members kept per movie.
const MaxCast = 5

// Movie is one row of the movie attribute table.
type Movie struct {
	Title       string
	ReleaseDate string
	VoteAverage *float64
	Overview    string
}

// Credit is one row of the credits table. Cast and Crew hold the raw JSON
// array cells.
type Credit struct {
	Title string
	Cast  string
	Crew  string
}

// Entry is a catalog movie joined with its credits.
type Entry struct {
	// Position is the dense 0-based index shared with the similarity rows.
	Position        int
	Title           string
	NormalizedTitle string
	// ReleaseDate is YYYY-MM-DD or empty when absent.
	ReleaseDate string
	// VoteAverage is nil when absent or out of [0,10].
	VoteAverage *float64
	Overview    string
	Director    string
	Cast        []string
}

// HasDirector reports whether a director was credited.
func (e Entry) HasDirector() bool {
	return e.Director != "" && e.Director != UnknownDirector
}

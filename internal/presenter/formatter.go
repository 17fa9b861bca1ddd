package presenter

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"cinematch/internal/catalog"
	"cinematch/internal/logging"
)

// PosterLookup resolves a poster URL and never fails.
type PosterLookup interface {
	Lookup(ctx context.Context, title, year string) string
}

// Formatter builds records and fills in posters.
type Formatter struct {
	posters     PosterLookup
	placeholder string
	concurrency int
	logger      *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithConcurrency bounds the number of poster lookups in flight.
func WithConcurrency(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithPlaceholder sets the poster URL used without a lookup.
func WithPlaceholder(url string) Option {
	return func(f *Formatter) {
		if url != "" {
			f.placeholder = url
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		f.logger = logging.NewComponentLogger(logger, "presenter")
	}
}

// New creates a Formatter. posters may be nil, in which case every record
// gets the placeholder.
func New(posters PosterLookup, placeholder string, opts ...Option) *Formatter {
	f := &Formatter{
		posters:     posters,
		placeholder: placeholder,
		concurrency: 4,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format builds the record for entry, including its poster.
func (f *Formatter) Format(ctx context.Context, entry catalog.Entry) Record {
	record := Describe(entry)
	record.PosterURL = f.poster(ctx, record)
	return record
}

// FormatAll formats entries in order. Poster lookups run concurrently and
// share nothing but the lookup collaborator.
func (f *Formatter) FormatAll(ctx context.Context, entries []catalog.Entry) []Record {
	records := make([]Record, len(entries))
	for i, entry := range entries {
		records[i] = Describe(entry)
	}
	if len(records) == 0 {
		return records
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i := range records {
		g.Go(func() error {
			records[i].PosterURL = f.poster(gctx, records[i])
			return nil
		})
	}
	_ = g.Wait()

	f.logger.Debug("records formatted", logging.Int("count", len(records)))
	return records
}

func (f *Formatter) poster(ctx context.Context, record Record) string {
	if f.posters == nil {
		return f.placeholder
	}
	year := record.ReleaseYear
	if year == NotAvailable {
		year = ""
	}
	url := f.posters.Lookup(ctx, record.Title, year)
	if url == "" {
		return f.placeholder
	}
	return url
}

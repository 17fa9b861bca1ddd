package presenter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinematch/internal/catalog"
	"cinematch/internal/presenter"
)

const placeholder = "https://placeholder.example/none.png"

type recordingLookup struct {
	mu       sync.Mutex
	years    map[string]string
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	url      func(title string) string
}

func (r *recordingLookup) Lookup(_ context.Context, title, year string) string {
	now := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		peak := r.peak.Load()
		if now <= peak || r.peak.CompareAndSwap(peak, now) {
			break
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	if r.years == nil {
		r.years = make(map[string]string)
	}
	r.years[title] = year
	r.mu.Unlock()
	return r.url(title)
}

func entries(titles ...string) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(titles))
	for i, title := range titles {
		out = append(out, catalog.Entry{Position: i, Title: title, ReleaseDate: "2001-01-01", Director: catalog.UnknownDirector})
	}
	return out
}

func TestFormatAllKeepsOrderAndBoundsConcurrency(t *testing.T) {
	lookup := &recordingLookup{
		delay: 10 * time.Millisecond,
		url:   func(title string) string { return "https://img/" + title },
	}
	f := presenter.New(lookup, placeholder, presenter.WithConcurrency(2))

	titles := []string{"a", "b", "c", "d", "e", "f"}
	records := f.FormatAll(context.Background(), entries(titles...))
	if len(records) != len(titles) {
		t.Fatalf("expected %d records, got %d", len(titles), len(records))
	}
	for i, title := range titles {
		if records[i].Title != title || records[i].PosterURL != "https://img/"+title {
			t.Fatalf("record %d = %+v", i, records[i])
		}
	}
	if peak := lookup.peak.Load(); peak > 2 {
		t.Fatalf("expected at most 2 concurrent lookups, saw %d", peak)
	}
}

func TestFormatUsesPlaceholderWithoutLookup(t *testing.T) {
	f := presenter.New(nil, placeholder)
	record := f.Format(context.Background(), entries("Avatar")[0])
	if record.PosterURL != placeholder {
		t.Fatalf("expected placeholder, got %q", record.PosterURL)
	}
}

func TestFormatSendsYearOnlyWhenKnown(t *testing.T) {
	lookup := &recordingLookup{url: func(string) string { return "" }}
	f := presenter.New(lookup, placeholder)

	undated := catalog.Entry{Title: "Undated"}
	dated := catalog.Entry{Title: "Dated", ReleaseDate: "1999-03-31"}
	records := f.FormatAll(context.Background(), []catalog.Entry{undated, dated})

	if lookup.years["Undated"] != "" {
		t.Fatalf("expected no year for undated entry, got %q", lookup.years["Undated"])
	}
	if lookup.years["Dated"] != "1999" {
		t.Fatalf("expected 1999, got %q", lookup.years["Dated"])
	}
	for _, r := range records {
		if r.PosterURL != placeholder {
			t.Fatalf("expected empty lookup result to fall back, got %q", r.PosterURL)
		}
	}
}

func TestFormatAllEmpty(t *testing.T) {
	f := presenter.New(nil, placeholder)
	if got := f.FormatAll(context.Background(), nil); len(got) != 0 {
		t.Fatalf("expected no records, got %v", got)
	}
}

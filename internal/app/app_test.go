package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"

	"cinematch/internal/app"
	"cinematch/internal/recommend"
	"cinematch/internal/services"
	"cinematch/internal/testsupport"
)

func avatarFixture() testsupport.Fixture {
	return testsupport.Fixture{
		Movies: []testsupport.MovieRow{
			{Title: "Avatar", ReleaseDate: "2009-12-10", VoteAverage: "7.2", Overview: "Pandora."},
			{Title: "Titanic", ReleaseDate: "1997-11-18", VoteAverage: "7.5"},
			{Title: "Avatar 2", ReleaseDate: "2022-12-14"},
		},
		Credits: []testsupport.CreditRow{
			{Title: "Avatar", Cast: []string{"Sam Worthington", "Zoe Saldana"}, Director: "James Cameron"},
			{Title: "Titanic", Cast: []string{"Leonardo DiCaprio"}, Director: "James Cameron"},
			{Title: "Avatar 2", Cast: []string{"Sam Worthington"}, Director: "James Cameron"},
		},
		Similarity: [][]float64{
			{1.0, 0.2, 0.9},
			{0.2, 1.0, 0.1},
			{0.9, 0.1, 1.0},
		},
	}
}

func TestOpenAndSearch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	avatarFixture().Write(t, cfg)

	a, err := app.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	res, err := a.Search(context.Background(), recommend.Request{Query: "avatar"}, false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !slices.Equal(res.Titles, []string{"Avatar 2", "Titanic"}) {
		t.Fatalf("Titles = %v", res.Titles)
	}
	if len(res.Records) != 2 || res.Records[0].PosterURL != cfg.Poster.PlaceholderURL {
		t.Fatalf("unexpected records: %+v", res.Records)
	}
	if res.Records[0].Rating != "N/A" || res.Records[1].Rating != "7.5/10" {
		t.Fatalf("unexpected ratings: %+v", res.Records)
	}

	compact, err := a.Search(context.Background(), recommend.Request{Query: "avatar", K: 1}, true)
	if err != nil {
		t.Fatalf("compact Search: %v", err)
	}
	if compact.Records != nil || !slices.Equal(compact.Titles, []string{"Avatar 2"}) {
		t.Fatalf("unexpected compact result: %+v", compact)
	}
}

func TestOpenRejectsSizeMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fixture := avatarFixture()
	fixture.Similarity = [][]float64{{1, 0}, {0, 1}}
	fixture.Write(t, cfg)

	_, err := app.Open(context.Background(), cfg, nil)
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestOpenMissingArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := app.Open(context.Background(), cfg, nil); !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if _, err := app.Open(context.Background(), nil, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestOpenWiresOMDbPosters(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		title := r.URL.Query().Get("t")
		_, _ = w.Write([]byte(`{"Response":"True","Poster":"https://img.example/` + title + `.jpg"}`))
	}))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithOMDb(server.URL, "key"))
	avatarFixture().Write(t, cfg)

	a, err := app.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	for i := 0; i < 2; i++ {
		res, err := a.Search(context.Background(), recommend.Request{Query: "Titanic", K: 1}, false)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if got := res.Records[0].PosterURL; got != "https://img.example/Avatar.jpg" {
			t.Fatalf("unexpected poster %q", got)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected cached second lookup, got %d requests", hits.Load())
	}

	offline, err := app.Open(context.Background(), cfg, nil, app.WithoutPosters())
	if err != nil {
		t.Fatalf("Open without posters: %v", err)
	}
	t.Cleanup(func() { _ = offline.Close() })
	if offline.Posters.Enabled() {
		t.Fatal("expected posters disabled")
	}
}

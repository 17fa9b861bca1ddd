package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"cinematch/internal/testsupport"
)

func TestTitlesFiltersCaseInsensitively(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"titles", "--filter", "AVATAR"}, env.configPath)
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	if out != "Avatar\nAvatar 2\n" {
		t.Fatalf("unexpected titles output %q", out)
	}

	out, _, err = runCLI(t, []string{"titles", "--limit", "1", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("titles --json: %v", err)
	}
	var titles []string
	if err := json.Unmarshal([]byte(out), &titles); err != nil {
		t.Fatalf("decode titles: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Avatar" {
		t.Fatalf("unexpected titles %v", titles)
	}

	out, _, err = runCLI(t, []string{"titles", "--filter", "zzz"}, env.configPath)
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	requireContains(t, out, "No titles match")
}

func TestInspectReportsArtifacts(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"inspect", "--json", "--sample", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Entries != 3 || report.Directors != 1 || report.Actors != 4 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.SimilarityShape != [2]int{3, 3} {
		t.Fatalf("unexpected shape %v", report.SimilarityShape)
	}
	if report.PostersEnabled || report.PosterCache != nil {
		t.Fatalf("expected posters disabled without a provider: %+v", report)
	}
	if len(report.Sample) != 2 || report.Sample[1].Title != "Titanic" || report.Sample[1].Year != "1997" {
		t.Fatalf("unexpected sample: %+v", report.Sample)
	}

	out, _, err = runCLI(t, []string{"inspect"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Catalog entries")
	requireContains(t, out, "3 x 3")
	requireContains(t, out, "disabled")
	requireContains(t, out, "Sam Worthington, Zoe Saldana")
}

func TestPosterCommandUsesProviderAndCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("t") != "Avatar" || r.URL.Query().Get("y") != "2009" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Response":"True","Poster":"https://img.example/avatar.jpg"}`))
	}))
	t.Cleanup(server.Close)

	env := setupCLITestEnv(t, testsupport.WithOMDb(server.URL, "test-key"))

	for i := 0; i < 2; i++ {
		out, _, err := runCLI(t, []string{"poster", "Avatar", "--year", "2009"}, env.configPath)
		if err != nil {
			t.Fatalf("poster: %v", err)
		}
		if strings.TrimSpace(out) != "https://img.example/avatar.jpg" {
			t.Fatalf("unexpected poster output %q", out)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected second run to hit the sqlite cache, got %d requests", hits.Load())
	}

	out, _, err := runCLI(t, []string{"inspect", "--json", "--sample", "0"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.PostersEnabled || report.PosterCache == nil || *report.PosterCache != 1 {
		t.Fatalf("expected one cached poster, got %+v", report)
	}
}

func TestPosterCommandFallsBackToPlaceholder(t *testing.T) {
	env := setupCLITestEnv(t)

	out, errOut, err := runCLI(t, []string{"poster", "--json", "Avatar"}, env.configPath)
	if err != nil {
		t.Fatalf("poster: %v", err)
	}
	var report posterReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.Placeholder || report.PosterURL != env.cfg.Poster.PlaceholderURL {
		t.Fatalf("expected placeholder, got %+v", report)
	}
	if errOut != "" {
		t.Fatalf("json mode should not print hints, got %q", errOut)
	}
}

func TestConfigInitValidateAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	env.cfg.Poster.OMDbAPIKey = "super-secret"
	writeTestConfig(t, env.configPath, env.cfg)
	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[recommend]")
	requireNotContains(t, out, "super-secret")
}

func TestConfigValidateReportsMissingData(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Data.CreditsPath); err != nil {
		t.Fatalf("remove credits: %v", err)
	}

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err == nil {
		t.Fatal("expected validate to fail")
	}
	requireContains(t, out, "Missing credits data")
}

func TestInvalidConfigIsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[recommend]\nlimit = -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HOME", t.TempDir())

	_, _, err := runCLI(t, []string{"titles"}, path)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if code := exitCode(err); code != 3 {
		t.Fatalf("exit code = %d, want 3 (%v)", code, err)
	}
}

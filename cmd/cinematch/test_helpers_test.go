package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinematch/internal/config"
	"cinematch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func avatarFixture() testsupport.Fixture {
	return testsupport.Fixture{
		Movies: []testsupport.MovieRow{
			{Title: "Avatar", ReleaseDate: "2009-12-10", VoteAverage: "7.2", Overview: "A marine on Pandora."},
			{Title: "Titanic", ReleaseDate: "1997-11-18", VoteAverage: "7.5", Overview: "An ill-fated voyage."},
			{Title: "Avatar 2", ReleaseDate: "2022-12-14"},
		},
		Credits: []testsupport.CreditRow{
			{Title: "Avatar", Cast: []string{"Sam Worthington", "Zoe Saldana"}, Director: "James Cameron"},
			{Title: "Titanic", Cast: []string{"Leonardo DiCaprio", "Kate Winslet"}, Director: "James Cameron"},
			{Title: "Avatar 2", Cast: []string{"Sam Worthington"}, Director: "James Cameron"},
		},
		Similarity: [][]float64{
			{1.0, 0.2, 0.9},
			{0.2, 1.0, 0.1},
			{0.9, 0.1, 1.0},
		},
	}
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	avatarFixture().Write(t, cfg)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}

func requireNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q\noutput:\n%s", needle, haystack)
	}
}

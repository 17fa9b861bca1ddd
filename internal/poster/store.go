package poster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// CachedPoster is a remembered provider answer. Found is false for a
// definitive "no poster" answer.
type CachedPoster struct {
	URL       string
	Found     bool
	FetchedAt time.Time
}

// Store persists provider answers in sqlite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// OpenStore opens or creates the cache database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Get returns the cached answer for key if it was fetched after notBefore.
func (s *Store) Get(ctx context.Context, key string, notBefore time.Time) (CachedPoster, bool, error) {
	var (
		url       string
		found     int
		fetchedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT url, found, fetched_at FROM posters WHERE cache_key = ?", key,
		).Scan(&url, &found, &fetchedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return CachedPoster{}, false, nil
	}
	if err != nil {
		return CachedPoster{}, false, fmt.Errorf("query poster cache: %w", err)
	}
	cached := CachedPoster{URL: url, Found: found == 1, FetchedAt: time.Unix(fetchedAt, 0)}
	if cached.FetchedAt.Before(notBefore.Truncate(time.Second)) {
		return CachedPoster{}, false, nil
	}
	return cached, true, nil
}

// Put records an answer for key, replacing any earlier one.
func (s *Store) Put(ctx context.Context, key string, poster CachedPoster) error {
	found := 0
	if poster.Found {
		found = 1
	}
	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `INSERT INTO posters (cache_key, url, found, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET url = excluded.url, found = excluded.found, fetched_at = excluded.fetched_at`,
			key, poster.URL, found, poster.FetchedAt.Unix())
		return err
	})
	if err != nil {
		return fmt.Errorf("store poster: %w", err)
	}
	return nil
}

// Prune deletes answers fetched before cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, "DELETE FROM posters WHERE fetched_at < ?", cutoff.Unix())
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("prune poster cache: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached answers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM posters").Scan(&n); err != nil {
		return 0, fmt.Errorf("count poster cache: %w", err)
	}
	return n, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

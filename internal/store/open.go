package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"edufair/internal/domain"
)

// DefaultURL matches the backend's historical default.
const DefaultURL = "sqlite:./registrations.db"

var (
	sqlite = dialect{
		driver: "sqlite",
		isUnique: func(err error) bool {
			return strings.Contains(err.Error(), "UNIQUE constraint failed")
		},
		prepare: prepareSQLite,
	}
	postgres = dialect{
		driver:   "pgx",
		numbered: true,
		isUnique: func(err error) bool {
			var pgErr *pgconn.PgError
			return errors.As(err, &pgErr) && pgErr.Code == "23505"
		},
	}
)

// Open connects to the registration store named by url.
func Open(ctx context.Context, url string) (domain.RegistrationStore, error) {
	if url == "" {
		url = DefaultURL
	}
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		path := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite:"), "//")
		if path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrUnsupportedURL, url)
		}
		return openSQL(ctx, sqlite, path)
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return openSQL(ctx, postgres, url)
	case strings.HasPrefix(url, "file:"):
		return NewFileStore(strings.TrimPrefix(url, "file:"))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
}

// prepareSQLite serialises writers on one connection and waits on a locked
// database instead of failing with SQLITE_BUSY.
func prepareSQLite(ctx context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("set journal_mode: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"edufair/internal/domain"
)

// dateLayout has fixed width so the text column sorts chronologically. Dates
// are stored in UTC and read back in local time.
const dateLayout = "2006-01-02T15:04:05.000000000Z"

type dialect struct {
	driver string
	// positional placeholders: "?" for sqlite, "$n" for postgres
	numbered bool
	isUnique func(error) bool
	// prepare tunes a freshly opened pool; may be nil
	prepare func(ctx context.Context, db *sql.DB) error
}

// SQLStore keeps registrations in a SQL table.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

const schema = `CREATE TABLE IF NOT EXISTS registrations (
	id                TEXT PRIMARY KEY,
	phone_number      TEXT NOT NULL,
	full_name         TEXT NOT NULL,
	registration_type TEXT NOT NULL,
	school_name       TEXT NOT NULL,
	registration_date TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'confirmed',
	event_date        TEXT NOT NULL DEFAULT ''
)`

func openSQL(ctx context.Context, d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s: %w", d.driver, err)
	}
	if d.prepare != nil {
		if err := d.prepare(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure %s: %w", d.driver, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db, d: d}, nil
}

// rebind rewrites "?" placeholders for dialects that number them.
func (s *SQLStore) rebind(q string) string {
	if !s.d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Save(ctx context.Context, r domain.Registration) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO registrations
		(id, phone_number, full_name, registration_type, school_name, registration_date, status, event_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		r.ID, r.Phone, r.FullName, string(r.Type), r.School,
		r.CreatedAt.UTC().Format(dateLayout), r.Status, r.EventDate)
	if err != nil && s.d.isUnique(err) {
		return ErrDuplicate
	}
	return err
}

const selectColumns = `SELECT id, phone_number, full_name, registration_type, school_name, registration_date, status, event_date FROM registrations`

func (s *SQLStore) Get(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE id = ?`), id)
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Registration{}, ErrNotFound
	}
	return r, err
}

func (s *SQLStore) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY registration_date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(sc scanner) (domain.Registration, error) {
	var (
		r       domain.Registration
		kind    string
		created string
	)
	if err := sc.Scan(&r.ID, &r.Phone, &r.FullName, &kind, &r.School, &created, &r.Status, &r.EventDate); err != nil {
		return domain.Registration{}, err
	}
	r.Type = domain.RegistrationType(kind)
	t, err := time.Parse(dateLayout, created)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("registration %s: bad date %q: %w", r.ID, created, err)
	}
	r.CreatedAt = t.Local()
	return r, nil
}

var _ domain.RegistrationStore = (*SQLStore)(nil)

// Package store persists confirmed USSD registrations.
//
// Open picks a backend from a URL:
//
//   - sqlite:<path>            SQLite through modernc.org/sqlite (the default)
//   - postgres://... or postgresql://...   PostgreSQL through pgx
//   - file:<dir>               one JSON document in dir, for demos and tests
//
// All backends implement domain.RegistrationStore, reject a second
// registration with an existing id with ErrDuplicate, and report unknown ids
// with ErrNotFound.
package store

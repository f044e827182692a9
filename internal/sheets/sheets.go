// Package sheets copies a contact list into a new Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmpty is returned when there is nothing to sync.
var ErrEmpty = errors.New("no records to sync")

// Client is the subset of the Sheets and Drive APIs Sync needs.
type Client interface {
	Create(ctx context.Context, title string) (id, url string, err error)
	WriteValues(ctx context.Context, id string, records [][]string) error
	Share(ctx context.Context, id, email string) error
}

// Result identifies the created spreadsheet.
type Result struct {
	ID   string
	URL  string
	Rows int
}

// Sync creates a spreadsheet called title and writes records from A1 in one
// batch. Each address in shareWith is granted writer access.
func Sync(ctx context.Context, c Client, title string, records [][]string, shareWith ...string) (Result, error) {
	if len(records) == 0 {
		return Result{}, ErrEmpty
	}
	id, url, err := c.Create(ctx, title)
	if err != nil {
		return Result{}, fmt.Errorf("create spreadsheet %q: %w", title, err)
	}
	if err := c.WriteValues(ctx, id, records); err != nil {
		return Result{}, fmt.Errorf("write values: %w", err)
	}
	for _, email := range shareWith {
		if err := c.Share(ctx, id, email); err != nil {
			return Result{}, fmt.Errorf("share with %s: %w", email, err)
		}
	}
	return Result{ID: id, URL: url, Rows: len(records)}, nil
}

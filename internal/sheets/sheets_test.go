package sheets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edufair/internal/sheets"
)

type fakeClient struct {
	title   string
	written [][]string
	shared  []string
	failOn  string
}

func (f *fakeClient) Create(_ context.Context, title string) (string, string, error) {
	if f.failOn == "create" {
		return "", "", errors.New("quota")
	}
	f.title = title
	return "sheet-1", "https://docs.google.com/spreadsheets/d/sheet-1", nil
}

func (f *fakeClient) WriteValues(_ context.Context, id string, records [][]string) error {
	if f.failOn == "write" {
		return errors.New("denied")
	}
	f.written = records
	return nil
}

func (f *fakeClient) Share(_ context.Context, id, email string) error {
	f.shared = append(f.shared, email)
	return nil
}

func TestSync_WritesAllRecords(t *testing.T) {
	c := &fakeClient{}
	recs := [][]string{{"Institution", "Email"}, {"Umma University", "info@umma.ac.ke"}}

	res, err := sheets.Sync(context.Background(), c, "Fair Contacts", recs, "ops@example.org")
	require.NoError(t, err)

	assert.Equal(t, sheets.Result{ID: "sheet-1", URL: "https://docs.google.com/spreadsheets/d/sheet-1", Rows: 2}, res)
	assert.Equal(t, "Fair Contacts", c.title)
	assert.Equal(t, recs, c.written)
	assert.Equal(t, []string{"ops@example.org"}, c.shared)
}

func TestSync_Errors(t *testing.T) {
	_, err := sheets.Sync(context.Background(), &fakeClient{}, "x", nil)
	assert.ErrorIs(t, err, sheets.ErrEmpty)

	_, err = sheets.Sync(context.Background(), &fakeClient{failOn: "write"}, "x", [][]string{{"a"}})
	assert.ErrorContains(t, err, "write values: denied")
}

package sheets

import (
	"context"
	"fmt"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Google talks to the real APIs with a service-account key file.
type Google struct {
	sheets *gsheets.Service
	drive  *drive.Service
}

// NewGoogle authenticates with the credentials file at credsPath.
func NewGoogle(ctx context.Context, credsPath string) (*Google, error) {
	creds := option.WithCredentialsFile(credsPath)
	ss, err := gsheets.NewService(ctx, creds, option.WithScopes(gsheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	ds, err := drive.NewService(ctx, creds, option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Google{sheets: ss, drive: ds}, nil
}

func (g *Google) Create(ctx context.Context, title string) (string, string, error) {
	sp, err := g.sheets.Spreadsheets.Create(&gsheets.Spreadsheet{
		Properties: &gsheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", err
	}
	return sp.SpreadsheetId, sp.SpreadsheetUrl, nil
}

func (g *Google) WriteValues(ctx context.Context, id string, records [][]string) error {
	values := make([][]interface{}, len(records))
	for i, rec := range records {
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		values[i] = row
	}
	_, err := g.sheets.Spreadsheets.Values.Update(id, "A1", &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (g *Google) Share(ctx context.Context, id, email string) error {
	_, err := g.drive.Permissions.Create(id, &drive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: email,
	}).Context(ctx).Do()
	return err
}

var _ Client = (*Google)(nil)

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"edufair/internal/contacts"
	"edufair/internal/sheets"
)

// sheets-sync <csv> <title>: copy the CSV into a new spreadsheet.
func sheetsSyncCmd(e *env) *cobra.Command {
	var creds string
	var share []string
	cmd := &cobra.Command{
		Use:   "sheets-sync <csv> <title>",
		Short: "Copy a CSV into a new Google spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := contacts.Records(args[0])
			if err != nil {
				return err
			}
			client, err := e.app.Sheets(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if len(share) == 0 {
				share = e.app.Config.Sheets.ShareWith
			}
			res, err := sheets.Sync(cmd.Context(), client, args[1], records, share...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced contacts from %s to Google Sheet: %s\n", args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rows)\n", res.URL, res.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds, "credentials", "", "service account key file (default $GOOGLE_APPLICATION_CREDENTIALS)")
	cmd.Flags().StringSliceVar(&share, "share", nil, "email addresses granted edit access")
	return cmd
}

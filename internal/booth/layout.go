package booth

import (
	"fmt"
	"io"

	"edufair/internal/contacts"
	"edufair/internal/domain"
)

// NoLocation is shown for booths whose row has no Map Location.
const NoLocation = "Not provided"

// Layout numbers the booths in row order starting at 1.
func Layout(rows []contacts.Row) []domain.Booth {
	booths := make([]domain.Booth, 0, len(rows))
	for i, row := range rows {
		loc := row.Get("Map Location")
		if loc == "" {
			loc = NoLocation
		}
		booths = append(booths, domain.Booth{
			Number:   i + 1,
			Name:     row.Name(contacts.DefaultName),
			Location: loc,
		})
	}
	return booths
}

// WriteLayout prints the booth map layout.
func WriteLayout(w io.Writer, booths []domain.Booth) error {
	if _, err := fmt.Fprintln(w, "\nBooth Map Layout:"); err != nil {
		return err
	}
	for _, b := range booths {
		if _, err := fmt.Fprintf(w, "Booth %d: %s - Map: %s\n", b.Number, b.Name, b.Location); err != nil {
			return err
		}
	}
	return nil
}

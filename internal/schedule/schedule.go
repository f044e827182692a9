// Package schedule assigns consecutive presentation slots to exhibitors.
package schedule

import (
	"fmt"
	"io"
	"time"

	"edufair/internal/contacts"
	"edufair/internal/domain"
)

const clock = "3:04 PM"

// Options define when the first slot starts and how slots are spaced.
type Options struct {
	Day    time.Time     // date of the event; only Y/M/D are used
	Start  time.Duration // offset of the first slot from midnight
	Length time.Duration
	Gap    time.Duration
}

// DefaultOptions starts at 11:00 with back-to-back one hour slots.
func DefaultOptions() Options {
	return Options{
		Start:  11 * time.Hour,
		Length: time.Hour,
	}
}

// Build assigns slot i (1-based) to row i.
func Build(rows []contacts.Row, opts Options) []domain.Slot {
	if opts.Length <= 0 {
		opts.Length = time.Hour
	}
	day := opts.Day
	if day.IsZero() {
		day = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	slots := make([]domain.Slot, 0, len(rows))
	for i, row := range rows {
		start := midnight.Add(opts.Start + time.Duration(i)*(opts.Length+opts.Gap))
		slots = append(slots, domain.Slot{
			Index: i + 1,
			Name:  row.Name(contacts.DefaultName),
			Start: start,
			End:   start.Add(opts.Length),
		})
	}
	return slots
}

// Write prints the schedule with a 12-hour clock.
func Write(w io.Writer, slots []domain.Slot) error {
	if _, err := fmt.Fprintln(w, "Event Schedule:"); err != nil {
		return err
	}
	for _, s := range slots {
		_, err := fmt.Fprintf(w, "%d. %s - Presentation Slot: %s - %s\n",
			s.Index, s.Name, s.Start.Format(clock), s.End.Format(clock))
		if err != nil {
			return err
		}
	}
	return nil
}

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"edufair/internal/booth"
	"edufair/internal/contacts"
	"edufair/internal/schedule"
)

// booths <csv>: number every exhibitor and print its map link.
func boothsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "booths <csv>",
		Short: "Print the booth layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := contacts.Open(args[0])
			if err != nil {
				return err
			}
			return booth.WriteLayout(cmd.OutOrStdout(), booth.Layout(rows))
		},
	}
}

// schedule <csv>: one presentation slot per exhibitor.
func scheduleCmd(e *env) *cobra.Command {
	var start string
	var length, gap time.Duration
	cmd := &cobra.Command{
		Use:   "schedule <csv>",
		Short: "Print the presentation schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := contacts.Open(args[0])
			if err != nil {
				return err
			}
			oc := e.app.Config.Outreach
			if start != "" {
				oc.ScheduleStart = start
			}
			offset, err := oc.ScheduleStartOffset()
			if err != nil {
				return err
			}
			opts := schedule.Options{
				Start:  offset,
				Length: oc.SlotLengthDuration(),
				Gap:    gap,
			}
			if length > 0 {
				opts.Length = length
			}
			if day, err := time.Parse(time.DateOnly, e.app.Event().Date); err == nil {
				opts.Day = day
			}
			return schedule.Write(cmd.OutOrStdout(), schedule.Build(rows, opts))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first slot start, HH:MM (default from config, 11:00)")
	cmd.Flags().DurationVar(&length, "length", 0, "slot length (default from config, 1h)")
	cmd.Flags().DurationVar(&gap, "gap", 0, "break between slots")
	return cmd
}

// export-html <csv> <out>: Leaflet map of booths that have coordinates.
func exportHTMLCmd(e *env) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "export-html <csv> <out.html>",
		Short: "Export booths with map coordinates to an HTML map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := contacts.Open(args[0])
			if err != nil {
				return err
			}
			opts := booth.DefaultMapOptions()
			if t := e.app.Config.Outreach.MapTitle; t != "" {
				opts.Title = t
			}
			if title != "" {
				opts.Title = title
			}
			markers := booth.Markers(rows)
			if err := booth.ExportFile(args[1], markers, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booth map exported to %s with %d booths.\n", args[1], len(markers))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "page title")
	return cmd
}

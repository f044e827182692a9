package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"edufair/internal/domain"
	"edufair/internal/ussd"
)

func registrationsCmd(e *env) *cobra.Command {
	var dbURL string
	cmd := &cobra.Command{
		Use:   "registrations",
		Short: "Inspect USSD registrations",
	}
	cmd.PersistentFlags().StringVar(&dbURL, "database", "", "registration store URL (default $DATABASE_URL or sqlite:./registrations.db)")

	load := func(cmd *cobra.Command) ([]domain.Registration, error) {
		st, err := e.app.Store(cmd.Context(), dbURL)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.List(cmd.Context())
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registrations, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				regs, err := load(cmd)
				if err != nil {
					return err
				}
				return writeTable(cmd.OutOrStdout(), regs)
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Summarise registrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				regs, err := load(cmd)
				if err != nil {
					return err
				}
				return writeStats(cmd.OutOrStdout(), ussd.ComputeStats(regs))
			},
		},
		exportCmd(load),
	)
	return cmd
}

func exportCmd(load func(*cobra.Command) ([]domain.Registration, error)) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export registrations as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regs, err := load(cmd)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return ussd.Export(cmd.OutOrStdout(), regs, format)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := ussd.Export(f, regs, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d registrations to %s\n", len(regs), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", ussd.FormatJSON, "json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func writeTable(w io.Writer, regs []domain.Registration) error {
	if len(regs) == 0 {
		_, err := fmt.Fprintln(w, "No registrations.")
		return err
	}
	rows := make([][]string, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, []string{
			r.ID, r.FullName, r.Phone, r.Type.Label(), r.School,
			r.CreatedAt.Local().Format(time.DateTime),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Phone", "Type", "School", "Registered").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeStats(w io.Writer, s domain.Stats) error {
	fmt.Fprintf(w, "Total registrations: %d\n", s.Total)
	fmt.Fprintf(w, "Students: %d\n", s.Students)
	fmt.Fprintf(w, "Teachers/Chaperones: %d\n", s.Teachers)

	if len(s.Schools) > 0 {
		schools := make([]string, 0, len(s.Schools))
		for name := range s.Schools {
			schools = append(schools, name)
		}
		sort.Slice(schools, func(i, j int) bool {
			a, b := schools[i], schools[j]
			if s.Schools[a] != s.Schools[b] {
				return s.Schools[a] > s.Schools[b]
			}
			return a < b
		})
		fmt.Fprintln(w, "\nBy school:")
		for _, name := range schools {
			fmt.Fprintf(w, "  %s: %d\n", name, s.Schools[name])
		}
	}

	if len(s.Hourly) > 0 {
		hours := make([]int, 0, len(s.Hourly))
		for h := range s.Hourly {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		fmt.Fprintln(w, "\nBy hour:")
		for _, h := range hours {
			fmt.Fprintf(w, "  %02d:00  %d\n", h, s.Hourly[h])
		}
	}
	return nil
}

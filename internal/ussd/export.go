package ussd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"edufair/internal/domain"
)

// ErrUnsupportedFormat is returned by Export for anything but json or csv.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{"Registration ID", "Full Name", "Phone Number", "Type", "School", "Registration Date"}

// Export writes regs as indented JSON or as CSV.
func Export(w io.Writer, regs []domain.Registration, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		if regs == nil {
			regs = []domain.Registration{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(regs)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, r := range regs {
			rec := []string{r.ID, r.FullName, r.Phone, string(r.Type), r.School, r.CreatedAt.UTC().Format(time.RFC3339)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

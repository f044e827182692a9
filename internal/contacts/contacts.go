package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultName is used when a row has neither an Institution nor a School.
const DefaultName = "Contact"

// ErrNoHeader is returned for an empty CSV.
var ErrNoHeader = errors.New("csv has no header row")

// Row is one CSV record keyed by normalised header.
type Row struct {
	values map[string]string
}

// NewRow builds a Row from header/value pairs, normalising headers like Read.
func NewRow(kv map[string]string) Row {
	r := Row{values: make(map[string]string, len(kv))}
	for k, v := range kv {
		r.values[normalise(k)] = strings.TrimSpace(v)
	}
	return r
}

// Get returns the trimmed value of col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r.values[normalise(col)]
}

// Has reports whether the row's file carried col at all.
func (r Row) Has(col string) bool {
	_, ok := r.values[normalise(col)]
	return ok
}

// First returns the first non-empty value among cols.
func (r Row) First(cols ...string) string {
	for _, c := range cols {
		if v := r.Get(c); v != "" {
			return v
		}
	}
	return ""
}

// Name is the display name of the row: Institution, then School, then fallback.
func (r Row) Name(fallback string) string {
	if v := r.First("Institution", "School"); v != "" {
		return v
	}
	return fallback
}

// Read parses all rows from r using the first record as header.
func Read(r io.Reader) ([]Row, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = normalise(h)
	}

	rows := make([]Row, 0, len(records)-1)
	// Rows of empty cells still take a position; only empty lines are skipped.
	for _, rec := range records[1:] {
		row := Row{values: make(map[string]string, len(header))}
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row.values[h] = strings.TrimSpace(rec[i])
			} else {
				row.values[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Open reads the CSV file at path.
func Open(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// Records returns the raw records of path, header included.
func Records(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are common in hand-edited lists
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func normalise(col string) string {
	return strings.ToLower(strings.TrimSpace(col))
}

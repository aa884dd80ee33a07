package parser

import "github.com/pkg/errors"

const (
	// HeaderSentinel is the cell value in the second column that marks the
	// column-header row of a test sheet, as written by the rig software.
	HeaderSentinel = "Time_x000D_\n[s]"

	// headerSentinelDecoded is the same marker when the reader already decoded
	// the _x000D_ escape into a carriage return.
	headerSentinelDecoded = "Time\r\n[s]"

	// sentinelColumn is the index of the column scanned for HeaderSentinel.
	sentinelColumn = 1

	// cellArtifact is the escaped carriage return left behind in header cells.
	cellArtifact = "_x000D_"

	// UnnamedPrefix names header cells that are empty after cleaning.
	UnnamedPrefix = "Unnamed_"

	// TimeMarker identifies the time column by substring match.
	TimeMarker = "Time"
)

var (
	ErrMalformedInput        = errors.New("workbook could not be read")
	ErrUnknownSheet          = errors.New("sheet not present in workbook")
	ErrNoHeaderFound         = errors.New("header marker cell not found")
	ErrNoTimeColumn          = errors.New("time column not found")
	ErrMissingRequiredColumn = errors.New("required column missing")
	ErrColumnNotEligible     = errors.New("column not eligible for selection")
)

// RawSheet is an untyped sheet as stored in the workbook. Rows are ragged:
// trailing empty cells are not present.
type RawSheet struct {
	Name string
	Rows [][]string
}

// Cell returns the value at (row, col) and whether the cell holds a value.
func (s *RawSheet) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(s.Rows) {
		return "", false
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], r[col] != ""
}

// Workbook holds every sheet of an upload, keyed by name.
type Workbook struct {
	Path       string
	SheetNames []string // workbook order
	Sheets     map[string]*RawSheet
}

// NewWorkbook initializes an empty Workbook.
func NewWorkbook(path string) *Workbook {
	return &Workbook{
		Path:       path,
		SheetNames: make([]string, 0),
		Sheets:     make(map[string]*RawSheet),
	}
}

// AddSheet appends a sheet, keeping workbook order.
func (w *Workbook) AddSheet(sheet *RawSheet) {
	if _, exists := w.Sheets[sheet.Name]; !exists {
		w.SheetNames = append(w.SheetNames, sheet.Name)
	}
	w.Sheets[sheet.Name] = sheet
}

// Sheet looks a sheet up by name.
func (w *Workbook) Sheet(name string) (*RawSheet, error) {
	sheet, ok := w.Sheets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSheet, "sheet %q", name)
	}
	return sheet, nil
}

// NormalizedTable is a sheet cut at its header row. Columns are unique and
// cleaned; Rows keep the sheet's original order.
type NormalizedTable struct {
	Sheet     string
	HeaderRow int // row index of the header inside the RawSheet
	Columns   []string
	Rows      [][]string
}

// ColumnIndex returns the position of a named column, or -1.
func (t *NormalizedTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at body row `row` of column `col`; missing cells
// come back as "".
func (t *NormalizedTable) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns every body value of a named column.
func (t *NormalizedTable) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, errors.Wrapf(ErrMissingRequiredColumn, "column %q in sheet %q", name, t.Sheet)
	}
	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Value(i, idx)
	}
	return values, nil
}

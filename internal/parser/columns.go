package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ColumnOptions is what a normalized sheet offers for column selection.
type ColumnOptions struct {
	Sheet    string
	Time     string
	Eligible []string // candidates for current and voltage, in column order
}

// ColumnSelection is the user's current/voltage choice. It is fixed from the
// first selected sheet and reused for every other sheet of the pass.
type ColumnSelection struct {
	Current string
	Voltage string
}

// BoundColumns are the column positions of one sheet for a given selection.
type BoundColumns struct {
	Time    int
	Current int
	Voltage int
}

// findTimeColumn returns the first column whose name contains TimeMarker.
func findTimeColumn(table *NormalizedTable) (string, bool) {
	return lo.Find(table.Columns, func(col string) bool {
		return strings.Contains(col, TimeMarker)
	})
}

// ResolveColumns identifies the time column of a table and the columns that
// may be chosen as current or voltage.
func ResolveColumns(table *NormalizedTable) (*ColumnOptions, error) {
	timeCol, ok := findTimeColumn(table)
	if !ok {
		return nil, errors.Wrapf(ErrNoTimeColumn, "sheet %q", table.Sheet)
	}
	eligible := lo.Filter(table.Columns, func(col string, _ int) bool {
		return !strings.HasPrefix(col, UnnamedPrefix) && col != timeCol
	})
	return &ColumnOptions{
		Sheet:    table.Sheet,
		Time:     timeCol,
		Eligible: eligible,
	}, nil
}

// Select validates a current/voltage choice against the eligible columns.
func (o *ColumnOptions) Select(current, voltage string) (ColumnSelection, error) {
	for _, name := range []string{current, voltage} {
		if !lo.Contains(o.Eligible, name) {
			return ColumnSelection{}, errors.Wrapf(ErrColumnNotEligible, "column %q in sheet %q", name, o.Sheet)
		}
	}
	return ColumnSelection{Current: current, Voltage: voltage}, nil
}

// BindColumns locates the time column and the selected current/voltage
// columns inside one sheet.
func BindColumns(table *NormalizedTable, sel ColumnSelection) (*BoundColumns, error) {
	timeCol, ok := findTimeColumn(table)
	if !ok {
		return nil, errors.Wrapf(ErrNoTimeColumn, "sheet %q", table.Sheet)
	}
	bound := &BoundColumns{Time: table.ColumnIndex(timeCol)}

	missing := lo.Filter([]string{sel.Current, sel.Voltage}, func(name string, _ int) bool {
		return table.ColumnIndex(name) < 0
	})
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrMissingRequiredColumn, "sheet %q lacks %s", table.Sheet, strings.Join(lo.Uniq(missing), ", "))
	}
	bound.Current = table.ColumnIndex(sel.Current)
	bound.Voltage = table.ColumnIndex(sel.Voltage)
	return bound, nil
}

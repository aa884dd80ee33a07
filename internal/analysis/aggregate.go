package analysis

import "sort"

// ResultTable is the ranked, read-only set of test results of one pass.
type ResultTable struct {
	rows []TestResult
}

// NewResultTable ranks results by representative voltage, highest first.
// Equal voltages keep their processing order.
func NewResultTable(results []TestResult) *ResultTable {
	rows := make([]TestResult, len(results))
	copy(rows, results)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RepresentativeVoltage > rows[j].RepresentativeVoltage
	})
	return &ResultTable{rows: rows}
}

// Rows returns a copy of the ranked rows.
func (t *ResultTable) Rows() []TestResult {
	if t == nil {
		return nil
	}
	out := make([]TestResult, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len is the number of ranked rows.
func (t *ResultTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

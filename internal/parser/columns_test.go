package parser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	table, err := NormalizeSheet(rigSheet("Test 1"))
	require.NoError(t, err)

	opts, err := ResolveColumns(table)
	require.NoError(t, err)
	assert.Equal(t, "Time[s]", opts.Time)
	assert.Equal(t, []string{"No", "Current[A]", "Voltage[V]"}, opts.Eligible)
}

func TestResolveColumnsTimeIsCaseSensitive(t *testing.T) {
	table := &NormalizedTable{Sheet: "lower", Columns: []string{"time", "I", "V"}}

	_, err := ResolveColumns(table)
	assert.True(t, errors.Is(err, ErrNoTimeColumn))
}

func TestResolveColumnsPicksFirstTimeColumn(t *testing.T) {
	table := &NormalizedTable{Sheet: "two", Columns: []string{"I", "Time[s]", "TimeStamp", "V"}}

	opts, err := ResolveColumns(table)
	require.NoError(t, err)
	assert.Equal(t, "Time[s]", opts.Time)
	assert.Equal(t, []string{"I", "TimeStamp", "V"}, opts.Eligible)
}

func TestColumnOptionsSelect(t *testing.T) {
	opts := &ColumnOptions{Sheet: "s", Time: "Time[s]", Eligible: []string{"I", "V"}}

	sel, err := opts.Select("I", "V")
	require.NoError(t, err)
	assert.Equal(t, ColumnSelection{Current: "I", Voltage: "V"}, sel)

	for _, pair := range [][2]string{{"Time[s]", "V"}, {"I", "Unnamed_3"}, {"", "V"}} {
		_, err := opts.Select(pair[0], pair[1])
		assert.True(t, errors.Is(err, ErrColumnNotEligible), "%v", pair)
	}
}

func TestBindColumns(t *testing.T) {
	table := &NormalizedTable{Sheet: "s", Columns: []string{"No", "Time[s]", "I", "V"}}

	bound, err := BindColumns(table, ColumnSelection{Current: "I", Voltage: "V"})
	require.NoError(t, err)
	assert.Equal(t, &BoundColumns{Time: 1, Current: 2, Voltage: 3}, bound)

	_, err = BindColumns(table, ColumnSelection{Current: "I", Voltage: "U"})
	assert.True(t, errors.Is(err, ErrMissingRequiredColumn))
	assert.Contains(t, err.Error(), "lacks U")

	_, err = BindColumns(&NormalizedTable{Sheet: "n", Columns: []string{"I", "V"}}, ColumnSelection{Current: "I", Voltage: "V"})
	assert.True(t, errors.Is(err, ErrNoTimeColumn))
}

func TestNormalizedTableColumn(t *testing.T) {
	table := &NormalizedTable{
		Sheet:   "s",
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}, {"3"}},
	}

	col, err := table.Column("B")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", ""}, col)

	_, err = table.Column("C")
	assert.True(t, errors.Is(err, ErrMissingRequiredColumn))
}

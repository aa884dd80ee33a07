package parser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rigSheet(name string) *RawSheet {
	return &RawSheet{
		Name: name,
		Rows: [][]string{
			{"Test rig export"},
			{"Operator", "QA"},
			{},
			{"No_x000D_\n", HeaderSentinel, " Current_x000D_\n[A] ", "Voltage\n[V]", ""},
			{"1", "0.000", "0.01", "10"},
			{"2", "0.001", "0.02", "10"},
			{"3", "0.002", "0.015", "10"},
		},
	}
}

func TestNormalizeSheetLocatesHeader(t *testing.T) {
	sheet := rigSheet("Test 1")

	table, err := NormalizeSheet(sheet)
	require.NoError(t, err)

	assert.Equal(t, 3, table.HeaderRow)
	assert.Equal(t, []string{"No", "Time[s]", "Current[A]", "Voltage[V]", "Unnamed_4"}, table.Columns)
	assert.Len(t, table.Rows, len(sheet.Rows)-table.HeaderRow-1)
	assert.Equal(t, "0.000", table.Value(0, 1))
	assert.Equal(t, "0.015", table.Value(2, 2))
}

func TestNormalizeSheetHeaderOnFirstRow(t *testing.T) {
	sheet := &RawSheet{Name: "bare", Rows: [][]string{
		{"", HeaderSentinel, "I"},
		{"", "0.1", "0.2"},
	}}

	table, err := NormalizeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, table.HeaderRow)
	assert.Equal(t, []string{"Unnamed_0", "Time[s]", "I"}, table.Columns)
	assert.Len(t, table.Rows, 1)
}

func TestNormalizeSheetAcceptsDecodedCarriageReturn(t *testing.T) {
	sheet := &RawSheet{Name: "decoded", Rows: [][]string{
		{"", "Time\r\n[s]", "I"},
		{"", "0.1", "0.2"},
	}}

	table, err := NormalizeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, "Time[s]", table.Columns[1])
}

func TestNormalizeSheetWithoutHeader(t *testing.T) {
	cases := map[string]*RawSheet{
		"empty":            {Name: "empty"},
		"marker in col 0":  {Name: "c0", Rows: [][]string{{HeaderSentinel, "x"}}},
		"cleaned variant":  {Name: "cv", Rows: [][]string{{"", "Time[s]"}}},
		"spaced variant":   {Name: "sv", Rows: [][]string{{"", "Time [s]"}}},
		"short rows only":  {Name: "sr", Rows: [][]string{{"a"}, {"b"}}},
	}
	for name, sheet := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeSheet(sheet)
			assert.True(t, errors.Is(err, ErrNoHeaderFound), "got %v", err)
		})
	}
}

func TestNormalizeSheetUsesFirstMarker(t *testing.T) {
	sheet := &RawSheet{Name: "twice", Rows: [][]string{
		{"", HeaderSentinel, "A"},
		{"", "0.1", "1"},
		{"", HeaderSentinel, "B"},
		{"", "0.2", "2"},
	}}

	table, err := NormalizeSheet(sheet)
	require.NoError(t, err)
	assert.Equal(t, "A", table.Columns[2])
	assert.Len(t, table.Rows, 3)
}

func TestCleanColumnName(t *testing.T) {
	cases := []struct {
		raw     string
		present bool
		index   int
		want    string
	}{
		{"Time_x000D_\n[s]", true, 1, "Time[s]"},
		{"  Current  ", true, 2, "Current"},
		{"\n", true, 3, "Unnamed_3"},
		{"_x000D_", true, 4, "Unnamed_4"},
		{"", false, 5, "Unnamed_5"},
		{"_x00_x000D_0D_", true, 6, "Unnamed_6"},
		{"_x000D\n_", true, 7, "Unnamed_7"},
		{"Voltage", true, 8, "Voltage"},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			got := CleanColumnName(c.raw, c.present, c.index)
			assert.Equal(t, c.want, got)
			assert.Equal(t, got, CleanColumnName(got, true, c.index), "cleaning must be idempotent")
		})
	}
}

func TestUniqueNames(t *testing.T) {
	got := uniqueNames([]string{"Voltage", "Current", "Voltage", "Voltage.1", "Voltage"})
	assert.Equal(t, []string{"Voltage", "Current", "Voltage.2", "Voltage.1", "Voltage.3"}, got)
}

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/coil_analyzer_go/internal/parser"
)

func tableOf(rows ...[]string) (*parser.NormalizedTable, *parser.BoundColumns) {
	return &parser.NormalizedTable{
		Sheet:   "t",
		Columns: []string{"Time[s]", "I", "V"},
		Rows:    rows,
	}, &parser.BoundColumns{Time: 0, Current: 1, Voltage: 2}
}

func TestBuildTraceActiveRegion(t *testing.T) {
	table, cols := tableOf(
		[]string{"0", "0.0001", "10"},
		[]string{"0.001", "0.0005", "10"},
		[]string{"0.002", "0.0006", "10"},
		[]string{"0.003", "0.25", "12"},
		[]string{"0.004", "", "12"},
		[]string{"x", "0.3", "12"},
		[]string{"0.006", "0.3"},
	)

	trace := BuildTrace("t", table, cols)

	require.Len(t, trace.Samples, 2)
	assert.Equal(t, Sample{Time: 2, Current: 0.0006, Voltage: 10}, trace.Samples[0])
	assert.Equal(t, Sample{Time: 3, Current: 0.25, Voltage: 12}, trace.Samples[1])
	assert.Equal(t, TraceStats{Rows: 7, Retained: 2, BelowFloor: 2, Invalid: 3}, trace.Stats)
	assert.Equal(t, trace.Stats.Rows, trace.Stats.Retained+trace.Stats.BelowFloor+trace.Stats.Invalid)

	for _, s := range trace.Samples {
		assert.Greater(t, s.Current, NoiseFloor)
	}
}

func TestBuildTraceRoundsMilliseconds(t *testing.T) {
	table, cols := tableOf([]string{"0.00123456", "1", "1"}, []string{" 0.5 ", "1", "1"})

	trace := BuildTrace("t", table, cols)

	assert.Equal(t, []float64{1.23, 500}, trace.Times())
	assert.Equal(t, []float64{1, 1}, trace.Currents())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.0, round2(0.000045))
	assert.Equal(t, 0.29, round2(0.29))
	assert.Equal(t, 1.24, round2(1.2351))
	assert.Equal(t, 0.0, round2(-0.001))
	assert.False(t, 1/round2(-0.001) < 0, "negative zero leaked")
}

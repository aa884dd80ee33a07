package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/user/coil_analyzer_go/internal/parser"
)

func parseNumber(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// BuildTrace extracts the time/current/voltage columns of a sheet, rescales
// time to milliseconds and keeps only the active region.
func BuildTrace(test string, table *parser.NormalizedTable, cols *parser.BoundColumns) *Trace {
	trace := &Trace{
		Test:    test,
		Samples: make([]Sample, 0, len(table.Rows)),
	}
	trace.Stats.Rows = len(table.Rows)

	for i := range table.Rows {
		seconds, okT := parseNumber(table.Value(i, cols.Time))
		current, okI := parseNumber(table.Value(i, cols.Current))
		voltage, okV := parseNumber(table.Value(i, cols.Voltage))
		if !okT || !okI || !okV {
			trace.Stats.Invalid++
			continue
		}
		if current <= NoiseFloor {
			trace.Stats.BelowFloor++
			continue
		}
		trace.Samples = append(trace.Samples, Sample{
			Time:    round2(seconds * msPerSecond),
			Current: current,
			Voltage: voltage,
		})
	}
	trace.Stats.Retained = len(trace.Samples)
	return trace
}

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceOf(currents ...float64) *Trace {
	tr := &Trace{Test: "t"}
	for i, c := range currents {
		tr.Samples = append(tr.Samples, Sample{Time: float64(i), Current: c, Voltage: 10})
	}
	return tr
}

func TestFindTroughsSingleValley(t *testing.T) {
	troughs := FindTroughs(traceOf(0.2, 0.15, 0.1, 0.05, 0.1, 0.15, 0.2))

	require.Len(t, troughs, 1)
	assert.Equal(t, Trough{Index: 3, Time: 3, Current: 0.05}, troughs[0])
}

func TestFindTroughs(t *testing.T) {
	cases := []struct {
		name     string
		currents []float64
		want     []int
	}{
		{"two valleys", []float64{0.5, 0.1, 0.5, 0.2, 0.5}, []int{1, 3}},
		{"shallow dip", []float64{0.2, 0.19, 0.2}, []int{}},
		{"flat valley resolves to middle", []float64{0.5, 0.1, 0.1, 0.1, 0.5}, []int{2}},
		{"even plateau rounds down", []float64{0.5, 0.1, 0.1, 0.5}, []int{1}},
		{"monotonic", []float64{0.1, 0.2, 0.3, 0.4}, []int{}},
		{"minimum on boundary", []float64{0.05, 0.3, 0.2}, []int{}},
		{"too short", []float64{0.3, 0.1}, []int{}},
		{"empty", nil, []int{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := make([]int, 0)
			for _, tr := range FindTroughs(traceOf(c.currents...)) {
				got = append(got, tr.Index)
			}
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFindTroughsDeterministic(t *testing.T) {
	trace := traceOf(0.9, 0.4, 0.8, 0.3, 0.35, 0.32, 0.9, 0.1, 0.6)

	first := FindTroughs(trace)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FindTroughs(trace))
	}
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Time, first[i].Time)
	}
}

func TestDetectPeaksProminence(t *testing.T) {
	x := []float64{0, 5, 1, 3, 0}

	assert.Equal(t, []int{1, 3}, DetectPeaks(x, 2))
	assert.Equal(t, []int{1}, DetectPeaks(x, 2.5))
	assert.Equal(t, 5.0, prominence(x, 1))
	assert.Equal(t, 2.0, prominence(x, 3))
}

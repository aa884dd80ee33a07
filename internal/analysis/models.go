package analysis

import (
	"math"

	"github.com/pkg/errors"

	"github.com/user/coil_analyzer_go/internal/config"
	"github.com/user/coil_analyzer_go/internal/parser"
)

const (
	// NoiseFloor is the current a sample must exceed to be part of the active region.
	NoiseFloor = 0.0005
	// TroughProminence is the minimum prominence of a current trough.
	TroughProminence = 0.03
	// SampleWeight is the fixed per-sample duration weight of the rig export.
	SampleWeight = 0.1
	// EnergyScale converts the weighted sums to the reporting unit.
	EnergyScale = 1000.0

	msPerSecond = 1000.0
)

var (
	ErrNoSheetsSelected   = errors.New("select at least one sheet")
	ErrColumnsNotSelected = errors.New("current and voltage columns must both be selected")
	ErrNegativeParameter  = errors.New("resistance and inductance must be >= 0")
	ErrNoCutoff           = errors.New("no cutoff time available")
	ErrInvalidCutoff      = errors.New("cutoff time is not valid for this test")
	ErrEmptyWindow        = errors.New("no samples before the cutoff time")
	ErrMissingEdgeSample  = errors.New("current at the window edge not found")
)

// Sample is one active-region row of a test. Time is in milliseconds.
type Sample struct {
	Time    float64
	Current float64
	Voltage float64
}

// TraceStats counts how the rows of a sheet were classified.
type TraceStats struct {
	Rows       int // body rows of the normalized table
	Retained   int // current above NoiseFloor
	BelowFloor int // numeric current at or below NoiseFloor
	Invalid    int // time, current or voltage not numeric
}

// Trace is the active region of one test.
type Trace struct {
	Test    string
	Samples []Sample
	Stats   TraceStats
}

// Times returns the sample times of the trace.
func (t *Trace) Times() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Time
	}
	return out
}

// Currents returns the sample currents of the trace.
func (t *Trace) Currents() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Current
	}
	return out
}

// Trough is a detected local minimum of the current trace.
type Trough struct {
	Index   int // position in Trace.Samples
	Time    float64
	Current float64
}

// Window is the prefix of a trace before a cutoff time.
type Window struct {
	Cutoff      float64
	Samples     []Sample
	LastTime    float64
	EdgeCurrent float64
}

// WindowRow is one exported row of a window table.
type WindowRow struct {
	Sample
	Delivered float64 // I * V * SampleWeight
	Resistive float64 // I^2 * R * SampleWeight
}

// TestResult is the energy balance of one test.
type TestResult struct {
	Test                  string
	Delivered             float64
	ResistiveLoss         float64
	InductiveEnergy       float64
	Result                float64
	RepresentativeVoltage float64
}

// TestAnalysis collects every stage of one sheet. Err is set when the sheet
// was skipped; the stages reached before the failure stay populated.
type TestAnalysis struct {
	Test    string
	Trace   *Trace
	Troughs []Trough
	Cutoff  float64
	Window  *Window
	Result  *TestResult
	Err     error
}

// Skipped reports whether the test produced no result.
func (t *TestAnalysis) Skipped() bool {
	return t.Err != nil || t.Result == nil
}

// Analysis holds the outcome of one pass over the selected sheets.
type Analysis struct {
	RunID     string
	Workbook  string
	Session   config.Session
	Columns   *parser.ColumnOptions
	Selection parser.ColumnSelection
	Tests     []*TestAnalysis
	Results   *ResultTable
	Messages  []string // human-readable per-sheet conditions
}

// NewAnalysis initializes an empty Analysis.
func NewAnalysis(runID string, session config.Session) *Analysis {
	return &Analysis{
		RunID:    runID,
		Session:  session,
		Tests:    make([]*TestAnalysis, 0, len(session.Sheets)),
		Messages: make([]string, 0),
	}
}

// Test returns the analysis of a named test.
func (a *Analysis) Test(name string) (*TestAnalysis, bool) {
	for _, t := range a.Tests {
		if t.Test == name {
			return t, true
		}
	}
	return nil, false
}

// round2 rounds half to even at two decimals, the way array libraries round.
func round2(v float64) float64 {
	r := math.RoundToEven(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

package main

import (
	"github.com/user/coil_analyzer_go/internal/analysis"
)

// Views are the JSON shapes handed to the frontend.

type WorkbookView struct {
	Path   string   `json:"path"`
	Sheets []string `json:"sheets"`
}

type PointView struct {
	Time    float64 `json:"time"`
	Current float64 `json:"current"`
}

type WindowRowView struct {
	Time      float64 `json:"time"`
	Current   float64 `json:"current"`
	Voltage   float64 `json:"voltage"`
	Delivered float64 `json:"delivered"`
	Resistive float64 `json:"resistive"`
}

type ResultView struct {
	Test                  string  `json:"test"`
	Delivered             float64 `json:"delivered"`
	ResistiveLoss         float64 `json:"resistiveLoss"`
	InductiveEnergy       float64 `json:"inductiveEnergy"`
	Result                float64 `json:"result"`
	RepresentativeVoltage float64 `json:"representativeVoltage"`
}

type TestView struct {
	Test    string          `json:"test"`
	Error   string          `json:"error,omitempty"`
	Trace   []PointView     `json:"trace"`
	Troughs []PointView     `json:"troughs"`
	Cutoff  float64         `json:"cutoff"`
	Window  []WindowRowView `json:"window"`
	Result  *ResultView     `json:"result,omitempty"`
}

type AnalysisView struct {
	RunID    string       `json:"runId"`
	Tests    []TestView   `json:"tests"`
	Results  []ResultView `json:"results"`
	Messages []string     `json:"messages"`
}

func resultView(r analysis.TestResult) ResultView {
	return ResultView{
		Test:                  r.Test,
		Delivered:             r.Delivered,
		ResistiveLoss:         r.ResistiveLoss,
		InductiveEnergy:       r.InductiveEnergy,
		Result:                r.Result,
		RepresentativeVoltage: r.RepresentativeVoltage,
	}
}

func newAnalysisView(a *analysis.Analysis) *AnalysisView {
	view := &AnalysisView{
		RunID:    a.RunID,
		Tests:    make([]TestView, 0, len(a.Tests)),
		Results:  make([]ResultView, 0, a.Results.Len()),
		Messages: a.Messages,
	}
	for _, r := range a.Results.Rows() {
		view.Results = append(view.Results, resultView(r))
	}

	for _, t := range a.Tests {
		tv := TestView{
			Test:    t.Test,
			Cutoff:  t.Cutoff,
			Trace:   []PointView{},
			Troughs: []PointView{},
			Window:  []WindowRowView{},
		}
		if t.Err != nil {
			tv.Error = analysis.Describe(t.Err)
		}
		if t.Trace != nil {
			for _, s := range t.Trace.Samples {
				tv.Trace = append(tv.Trace, PointView{Time: s.Time, Current: s.Current})
			}
		}
		for _, tr := range t.Troughs {
			tv.Troughs = append(tv.Troughs, PointView{Time: tr.Time, Current: tr.Current})
		}
		if t.Window != nil {
			for _, r := range t.Window.Rows(a.Session.Resistance) {
				tv.Window = append(tv.Window, WindowRowView{
					Time:      r.Time,
					Current:   r.Current,
					Voltage:   r.Voltage,
					Delivered: r.Delivered,
					Resistive: r.Resistive,
				})
			}
		}
		if t.Result != nil {
			rv := resultView(*t.Result)
			tv.Result = &rv
		}
		view.Tests = append(view.Tests, tv)
	}
	return view
}

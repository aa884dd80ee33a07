package analysis

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/user/coil_analyzer_go/internal/config"
)

// ResolveCutoff decides the cutoff time of a test from the session. Without
// an explicit choice the earliest trough is used.
func ResolveCutoff(test string, session config.Session, troughs []Trough) (float64, error) {
	c, ok := session.CutoffFor(test)
	if !ok {
		if len(troughs) == 0 {
			return 0, errors.Wrapf(ErrNoCutoff, "test %q has no troughs and no manual cutoff", test)
		}
		return troughs[0].Time, nil
	}

	switch c.Mode {
	case config.CutoffTroughs:
		if len(troughs) == 0 {
			return 0, errors.Wrapf(ErrNoCutoff, "test %q has no troughs to pick from", test)
		}
		if !lo.ContainsBy(troughs, func(tr Trough) bool { return tr.Time == c.Value }) {
			return 0, errors.Wrapf(ErrInvalidCutoff, "%g ms is not a trough time of %q", c.Value, test)
		}
		return c.Value, nil
	case config.CutoffManual:
		if c.Value < 0 {
			return 0, errors.Wrapf(ErrInvalidCutoff, "manual cutoff %g ms for %q is negative", c.Value, test)
		}
		return c.Value, nil
	default:
		return 0, errors.Wrapf(ErrInvalidCutoff, "unknown cutoff mode %q for %q", c.Mode, test)
	}
}

// SelectWindow keeps the trace samples strictly before cutoff and locates the
// current at the window's right edge.
func SelectWindow(trace *Trace, cutoff float64) (*Window, error) {
	samples := lo.Filter(trace.Samples, func(s Sample, _ int) bool {
		return s.Time < cutoff
	})
	if len(samples) == 0 {
		return nil, errors.Wrapf(ErrEmptyWindow, "test %q, cutoff %g ms", trace.Test, cutoff)
	}

	lastTime := lo.MaxBy(samples, func(a, b Sample) bool { return a.Time > b.Time }).Time

	edge, found := lo.Find(trace.Samples, func(s Sample) bool { return s.Time == lastTime })
	if !found {
		return nil, errors.Wrapf(ErrMissingEdgeSample, "test %q, time %g ms", trace.Test, lastTime)
	}

	return &Window{
		Cutoff:      cutoff,
		Samples:     samples,
		LastTime:    lastTime,
		EdgeCurrent: edge.Current,
	}, nil
}

// Rows expands the window into its exported table, with the per-sample
// delivered and resistive terms for the given resistance.
func (w *Window) Rows(resistance float64) []WindowRow {
	return lo.Map(w.Samples, func(s Sample, _ int) WindowRow {
		return WindowRow{
			Sample:    s,
			Delivered: deliveredTerm(s),
			Resistive: resistiveTerm(s, resistance),
		}
	})
}

package analysis

import (
	"github.com/pkg/errors"
)

func deliveredTerm(s Sample) float64 {
	return s.Current * s.Voltage * SampleWeight
}

func resistiveTerm(s Sample, resistance float64) float64 {
	return s.Current * s.Current * resistance * SampleWeight
}

// modeOf returns the most frequent value; among equally frequent values the
// one seen first wins, so an all-distinct series yields its first value.
func modeOf(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	for _, v := range values {
		if counts[v] == best {
			return v
		}
	}
	return 0
}

// ComputeEnergy computes the energy balance of a window:
// delivered electrical energy minus resistive loss minus the energy stored in
// the inductance at the window edge.
func ComputeEnergy(test string, w *Window, resistance, inductance float64) (TestResult, error) {
	if resistance < 0 || inductance < 0 {
		return TestResult{}, errors.Wrapf(ErrNegativeParameter, "R=%g, L=%g", resistance, inductance)
	}
	if w == nil || len(w.Samples) == 0 {
		return TestResult{}, errors.Wrapf(ErrEmptyWindow, "test %q", test)
	}

	var deliveredSum, resistiveSum float64
	voltages := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		deliveredSum += deliveredTerm(s)
		resistiveSum += resistiveTerm(s, resistance)
		voltages[i] = s.Voltage
	}

	delivered := deliveredSum / EnergyScale
	resistive := resistiveSum / EnergyScale
	inductive := w.EdgeCurrent * w.EdgeCurrent * inductance * 0.5 / EnergyScale

	return TestResult{
		Test:                  test,
		Delivered:             round2(delivered),
		ResistiveLoss:         round2(resistive),
		InductiveEnergy:       inductive,
		Result:                round2(delivered - resistive - inductive),
		RepresentativeVoltage: round2(modeOf(voltages)),
	}, nil
}

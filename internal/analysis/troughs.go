package analysis

// localMaxima returns the indices of local maxima of x. A flat top counts
// once, at its middle sample (rounded down); the first and last samples are
// never maxima.
func localMaxima(x []float64) []int {
	peaks := make([]int, 0)
	last := len(x) - 1
	i := 1
	for i < last {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < last && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}
	return peaks
}

// prominence of the peak at index p: its height above the higher of the two
// lowest points reached before climbing past it on either side.
func prominence(x []float64, p int) float64 {
	leftMin := x[p]
	for i := p; i >= 0 && x[i] <= x[p]; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}
	rightMin := x[p]
	for i := p; i < len(x) && x[i] <= x[p]; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}
	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return x[p] - base
}

// DetectPeaks returns, in ascending order, the indices of the local maxima of
// x whose topographic prominence is at least minProminence.
func DetectPeaks(x []float64, minProminence float64) []int {
	keep := make([]int, 0)
	for _, p := range localMaxima(x) {
		if prominence(x, p) >= minProminence {
			keep = append(keep, p)
		}
	}
	return keep
}

// FindTroughs detects the decay troughs of a trace: peaks of the negated
// current with at least TroughProminence.
func FindTroughs(trace *Trace) []Trough {
	if trace == nil {
		return nil
	}
	negated := make([]float64, len(trace.Samples))
	for i, s := range trace.Samples {
		negated[i] = -s.Current
	}

	idx := DetectPeaks(negated, TroughProminence)
	troughs := make([]Trough, 0, len(idx))
	for _, i := range idx {
		s := trace.Samples[i]
		troughs = append(troughs, Trough{Index: i, Time: s.Time, Current: s.Current})
	}
	return troughs
}

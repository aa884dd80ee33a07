package config

import (
	"github.com/pkg/errors"
)

// CutoffMode says where a test's cutoff time comes from.
type CutoffMode string

const (
	// CutoffTroughs picks one of the detected trough times.
	CutoffTroughs CutoffMode = "troughs"
	// CutoffManual takes a free numeric value in milliseconds.
	CutoffManual CutoffMode = "manual"
)

var ErrInvalidSession = errors.New("invalid session configuration")

// Cutoff is the per-test window cutoff choice.
type Cutoff struct {
	Mode  CutoffMode `json:"mode"`
	Value float64    `json:"value"`
}

// Session is everything the user chose for one analysis pass. It is passed by
// value into each pass and never mutated by it.
type Session struct {
	Sheets        []string          `json:"sheets"` // in the order chosen
	CurrentColumn string            `json:"currentColumn"`
	VoltageColumn string            `json:"voltageColumn"`
	Resistance    float64           `json:"resistance"`
	Inductance    float64           `json:"inductance"`
	Cutoffs       map[string]Cutoff `json:"cutoffs"` // keyed by test (sheet) name
}

// CutoffFor returns the cutoff configured for a test, if any.
func (s Session) CutoffFor(test string) (Cutoff, bool) {
	c, ok := s.Cutoffs[test]
	return c, ok
}

// WithCutoff returns a copy of the session with one test's cutoff replaced.
func (s Session) WithCutoff(test string, c Cutoff) Session {
	cutoffs := make(map[string]Cutoff, len(s.Cutoffs)+1)
	for k, v := range s.Cutoffs {
		cutoffs[k] = v
	}
	cutoffs[test] = c
	s.Cutoffs = cutoffs
	return s
}

// Validate checks the numeric constraints of the session.
func (s Session) Validate() error {
	if s.Resistance < 0 {
		return errors.Wrapf(ErrInvalidSession, "resistance must be >= 0, got %g", s.Resistance)
	}
	if s.Inductance < 0 {
		return errors.Wrapf(ErrInvalidSession, "inductance must be >= 0, got %g", s.Inductance)
	}
	for test, c := range s.Cutoffs {
		switch c.Mode {
		case CutoffTroughs:
		case CutoffManual:
			if c.Value < 0 {
				return errors.Wrapf(ErrInvalidSession, "manual cutoff for %q must be >= 0, got %g", test, c.Value)
			}
		default:
			return errors.Wrapf(ErrInvalidSession, "unknown cutoff mode %q for %q", c.Mode, test)
		}
	}
	return nil
}

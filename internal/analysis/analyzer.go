package analysis

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/coil_analyzer_go/internal/config"
	"github.com/user/coil_analyzer_go/internal/parser"
)

// Inspect normalizes the first selected sheet and lists the columns the user
// may pick for current and voltage.
func Inspect(wb *parser.Workbook, sheets []string) (*parser.ColumnOptions, error) {
	if wb == nil {
		return nil, errors.Wrap(parser.ErrMalformedInput, "no workbook loaded")
	}
	if len(sheets) == 0 {
		return nil, ErrNoSheetsSelected
	}
	raw, err := wb.Sheet(sheets[0])
	if err != nil {
		return nil, err
	}
	table, err := parser.NormalizeSheet(raw)
	if err != nil {
		return nil, err
	}
	return parser.ResolveColumns(table)
}

// AnalyzeWorkbook runs one full pass over the selected sheets of a workbook.
// A returned error means nothing could be computed; per-sheet failures are
// recorded on the matching TestAnalysis and in Messages instead.
func AnalyzeWorkbook(wb *parser.Workbook, session config.Session) (*Analysis, error) {
	if len(session.Sheets) == 0 {
		return nil, ErrNoSheetsSelected
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	opts, err := Inspect(wb, session.Sheets)
	if err != nil {
		return nil, errors.Wrap(err, "first selected sheet")
	}
	if session.CurrentColumn == "" || session.VoltageColumn == "" {
		return nil, ErrColumnsNotSelected
	}
	sel, err := opts.Select(session.CurrentColumn, session.VoltageColumn)
	if err != nil {
		return nil, err
	}

	result := NewAnalysis(uuid.New().String(), session)
	result.Workbook = wb.Path
	result.Columns = opts
	result.Selection = sel
	log := logrus.WithField("run", result.RunID)

	collected := make([]TestResult, 0, len(session.Sheets))
	for _, name := range session.Sheets {
		test := analyzeSheet(wb, name, sel, session)
		result.Tests = append(result.Tests, test)
		if test.Err != nil {
			msg := fmt.Sprintf("%s: %s", name, Describe(test.Err))
			result.Messages = append(result.Messages, msg)
			log.WithField("test", name).Warn(test.Err)
			continue
		}
		log.WithFields(logrus.Fields{
			"test":   name,
			"cutoff": test.Cutoff,
			"result": test.Result.Result,
		}).Debug("Test analyzed")
		collected = append(collected, *test.Result)
	}

	result.Results = NewResultTable(collected)
	log.Infof("Analysis complete: %d of %d tests produced a result", result.Results.Len(), len(session.Sheets))
	return result, nil
}

// analyzeSheet runs normalize -> trace -> troughs -> window -> energy for one sheet.
func analyzeSheet(wb *parser.Workbook, name string, sel parser.ColumnSelection, session config.Session) *TestAnalysis {
	test := &TestAnalysis{Test: name}

	raw, err := wb.Sheet(name)
	if err != nil {
		test.Err = err
		return test
	}
	table, err := parser.NormalizeSheet(raw)
	if err != nil {
		test.Err = err
		return test
	}
	cols, err := parser.BindColumns(table, sel)
	if err != nil {
		test.Err = err
		return test
	}

	test.Trace = BuildTrace(name, table, cols)
	test.Troughs = FindTroughs(test.Trace)

	test.Cutoff, err = ResolveCutoff(name, session, test.Troughs)
	if err != nil {
		test.Err = err
		return test
	}
	test.Window, err = SelectWindow(test.Trace, test.Cutoff)
	if err != nil {
		test.Err = err
		return test
	}

	res, err := ComputeEnergy(name, test.Window, session.Resistance, session.Inductance)
	if err != nil {
		test.Err = err
		return test
	}
	test.Result = &res
	return test
}

// Describe turns a pipeline error into the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var kind string
	switch {
	case errors.Is(err, parser.ErrMalformedInput):
		kind = "The file could not be read as a spreadsheet"
	case errors.Is(err, parser.ErrUnknownSheet):
		kind = "Sheet not found in the workbook"
	case errors.Is(err, parser.ErrNoHeaderFound):
		kind = fmt.Sprintf("%q cell not found", parser.HeaderSentinel)
	case errors.Is(err, parser.ErrNoTimeColumn):
		kind = "Time column not found"
	case errors.Is(err, parser.ErrMissingRequiredColumn):
		kind = "Selected current/voltage column missing"
	case errors.Is(err, parser.ErrColumnNotEligible):
		kind = "Column cannot be used as current or voltage"
	case errors.Is(err, ErrNoSheetsSelected):
		return "Please select at least one sheet."
	case errors.Is(err, ErrColumnsNotSelected):
		return "Please select both the current and the voltage column."
	case errors.Is(err, config.ErrInvalidSession), errors.Is(err, ErrNegativeParameter):
		kind = "Invalid input"
	case errors.Is(err, ErrNoCutoff):
		kind = "No cutoff time available"
	case errors.Is(err, ErrInvalidCutoff):
		kind = "Invalid cutoff time"
	case errors.Is(err, ErrEmptyWindow):
		kind = "No samples before the cutoff time"
	case errors.Is(err, ErrMissingEdgeSample):
		kind = "Current at the cutoff edge not found"
	default:
		kind = "Unexpected error"
	}
	return fmt.Sprintf("%s (%v)", kind, err)
}

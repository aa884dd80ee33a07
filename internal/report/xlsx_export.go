package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/user/coil_analyzer_go/internal/analysis"
)

// ExportSheet is the name of the single sheet of every exported workbook.
const ExportSheet = "Results"

var (
	ResultHeaders = []string{"Test Name", "Delivered", "Resistive Loss", "Result", "Representative Voltage"}
	WindowHeaders = []string{"Time (ms)", "Current", "Voltage", "I x V x 0.1", "R x I^2 x 0.1"}
)

// WriteTable writes a single-sheet workbook: one header row, then the rows.
func WriteTable(w io.Writer, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return errors.Wrap(err, "failed to name export sheet")
	}
	header := lo.Map(headers, func(h string, _ int) interface{} { return h })
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(err, "row %d", i+2)
		}
		r := row
		if err := f.SetSheetRow(ExportSheet, cell, &r); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}
	return errors.Wrap(f.Write(w), "failed to write workbook")
}

// ExportResults writes the ranked result table.
func ExportResults(w io.Writer, table *analysis.ResultTable) error {
	rows := lo.Map(table.Rows(), func(r analysis.TestResult, _ int) []interface{} {
		return []interface{}{r.Test, r.Delivered, r.ResistiveLoss, r.Result, r.RepresentativeVoltage}
	})
	return WriteTable(w, ResultHeaders, rows)
}

// ExportWindow writes the analysis window of one test with its per-sample
// energy terms.
func ExportWindow(w io.Writer, window *analysis.Window, resistance float64) error {
	if window == nil {
		return errors.Wrap(analysis.ErrEmptyWindow, "nothing to export")
	}
	rows := lo.Map(window.Rows(resistance), func(r analysis.WindowRow, _ int) []interface{} {
		return []interface{}{r.Time, r.Current, r.Voltage, r.Delivered, r.Resistive}
	})
	return WriteTable(w, WindowHeaders, rows)
}

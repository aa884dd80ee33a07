package parser

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook opens an .xlsx export from disk and reads every sheet.
func ReadWorkbook(path string) (*Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "failed to open %s: %v", path, err)
	}
	defer file.Close()

	wb, err := ReadWorkbookFrom(file)
	if err != nil {
		return nil, err
	}
	wb.Path = path
	return wb, nil
}

// ReadWorkbookFrom reads every sheet of an .xlsx stream. Cell values are kept
// as stored (no number formatting applied), so numeric cells arrive as their
// raw decimal text.
func ReadWorkbookFrom(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "failed to parse workbook: %v", err)
	}
	defer f.Close()

	wb := NewWorkbook("")
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "failed to read sheet %q: %v", name, err)
		}
		wb.AddSheet(&RawSheet{Name: name, Rows: rows})
	}
	if len(wb.SheetNames) == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "workbook has no sheets")
	}
	return wb, nil
}

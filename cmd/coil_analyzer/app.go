package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/user/coil_analyzer_go/internal/analysis"
	"github.com/user/coil_analyzer_go/internal/config"
	"github.com/user/coil_analyzer_go/internal/parser"
	"github.com/user/coil_analyzer_go/internal/report"
)

var errNoAnalysis = errors.New("run an analysis first")

// App struct
type App struct {
	ctx context.Context
	cfg config.AppConfig

	// mu serializes user actions; each one is a full synchronous pass.
	mu       sync.Mutex
	workbook *parser.Workbook
	last     *analysis.Analysis
}

// NewApp creates a new App application struct
func NewApp(cfg config.AppConfig) *App {
	return &App{cfg: cfg}
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, "Coil Analyzer GO")
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	logrus.Info(message)
}

func (a *App) clearLog() {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "clearLog")
	}
}

// OpenWorkbook asks for an .xlsx file and loads it.
func (a *App) OpenWorkbook() (*WorkbookView, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title:            "Select test rig export",
		DefaultDirectory: a.cfg.ExportDir,
		Filters:          []runtime.FileFilter{{DisplayName: "Excel workbooks (*.xlsx)", Pattern: "*.xlsx"}},
	})
	if err != nil || path == "" {
		return nil, err
	}
	return a.LoadWorkbook(path)
}

// LoadWorkbook reads a workbook and replaces the current session data.
func (a *App) LoadWorkbook(path string) (*WorkbookView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.clearLog()
	a.sendStatus(fmt.Sprintf("Loading: %s", path))
	wb, err := parser.ReadWorkbook(path)
	if err != nil {
		a.workbook, a.last = nil, nil
		msg := analysis.Describe(err)
		a.sendStatus(msg)
		return nil, errors.New(msg)
	}
	a.workbook, a.last = wb, nil
	a.sendStatus(fmt.Sprintf("Loaded %d sheets.", len(wb.SheetNames)))
	return &WorkbookView{Path: wb.Path, Sheets: wb.SheetNames}, nil
}

// SheetNames lists the sheets of the loaded workbook.
func (a *App) SheetNames() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.workbook == nil {
		return []string{}
	}
	return a.workbook.SheetNames
}

// ColumnOptions returns the columns of the first selected sheet that can be
// used as current or voltage.
func (a *App) ColumnOptions(sheets []string) (*parser.ColumnOptions, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	opts, err := analysis.Inspect(a.workbook, sheets)
	if err != nil {
		msg := analysis.Describe(err)
		a.sendStatus(msg)
		return nil, errors.New(msg)
	}
	return opts, nil
}

// Analyze runs one full pass with the given session and keeps it for export.
func (a *App) Analyze(session config.Session) (*AnalysisView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.clearLog()
	if a.workbook == nil {
		a.sendStatus("Please load an Excel file.")
		return nil, errors.New("no workbook loaded")
	}

	a.sendStatus(fmt.Sprintf("Analyzing %d sheets (R=%g, L=%g)...", len(session.Sheets), session.Resistance, session.Inductance))
	result, err := analysis.AnalyzeWorkbook(a.workbook, session)
	if err != nil {
		a.last = nil
		msg := analysis.Describe(err)
		a.sendStatus(msg)
		return nil, errors.New(msg)
	}
	a.last = result

	for _, m := range result.Messages {
		a.sendStatus(fmt.Sprintf("- %s", m))
	}
	var table bytes.Buffer
	report.RenderResultTable(&table, result.Results)
	a.sendStatus("Results:\n" + table.String())

	return newAnalysisView(result), nil
}

// ExportResults saves the ranked result table as a workbook.
func (a *App) ExportResults() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return "", errNoAnalysis
	}
	path, err := a.saveDialog(resultsFileName(a.last.Workbook), "*.xlsx")
	if err != nil || path == "" {
		return "", err
	}
	return path, a.exportResultsTo(path)
}

// ExportWindow saves the analysis window of one test as a workbook.
func (a *App) ExportWindow(test string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return "", errNoAnalysis
	}
	path, err := a.saveDialog(resultsFileName(test), "*.xlsx")
	if err != nil || path == "" {
		return "", err
	}
	return path, a.exportWindowTo(test, path)
}

// GenerateReport renders the charts and writes the PDF summary.
func (a *App) GenerateReport() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return "", errNoAnalysis
	}
	name := strings.TrimSuffix(filepath.Base(a.last.Workbook), filepath.Ext(a.last.Workbook)) + "_report.pdf"
	path, err := a.saveDialog(name, "*.pdf")
	if err != nil || path == "" {
		return "", err
	}
	return path, a.reportTo(path)
}

func (a *App) saveDialog(defaultName, pattern string) (string, error) {
	return runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		DefaultDirectory: a.cfg.ExportDir,
		DefaultFilename:  defaultName,
		Filters:          []runtime.FileFilter{{DisplayName: pattern, Pattern: pattern}},
	})
}

func resultsFileName(base string) string {
	name := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	if name == "" || name == "." {
		name = "analysis"
	}
	return name + "_results.xlsx"
}

func (a *App) exportResultsTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()
	if err := report.ExportResults(f, a.last.Results); err != nil {
		return err
	}
	a.sendStatus(fmt.Sprintf("Results exported: %s", path))
	return nil
}

func (a *App) exportWindowTo(test, path string) error {
	t, ok := a.last.Test(test)
	if !ok || t.Window == nil {
		return errors.Errorf("test %q has no analysis window", test)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()
	if err := report.ExportWindow(f, t.Window, a.last.Session.Resistance); err != nil {
		return err
	}
	a.sendStatus(fmt.Sprintf("Window of %s exported: %s", test, path))
	return nil
}

func (a *App) reportTo(path string) error {
	a.sendStatus("Generating plots...")
	images, problems := report.GeneratePlots(a.last)
	for _, p := range problems {
		a.sendStatus(p)
	}
	a.sendStatus(fmt.Sprintf("Generating PDF: %s...", path))
	if err := report.BuildPDFReport(path, a.last, images); err != nil {
		a.sendStatus(fmt.Sprintf("Error generating PDF report: %v", err))
		return err
	}
	a.sendStatus(fmt.Sprintf("PDF report successfully generated: %s", path))
	return nil
}

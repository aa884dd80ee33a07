package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/user/coil_analyzer_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	tr          func(string) string // UTF-8 to the core font code page
	styles      map[string]func()
	lineHeight  float64
	currentY    float64 // manually tracked Y for flowing content
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellRed"] = func() { // negative balance
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	text = s.tr(text)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// writeTable draws a bordered table; relWidths are fractions of the content width.
func (s *pdfStyler) writeTable(headers []string, relWidths []float64, rows [][]string, cellStyle func(row, col int) string) {
	widths := make([]float64, len(relWidths))
	for i, rel := range relWidths {
		widths[i] = rel * pdfContentWidth
	}

	drawHeader := func() {
		x := pdfMargin
		s.applyStyle("tableHeader")
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.tr(h), "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	drawHeader()
	for r, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			drawHeader()
		}
		x := pdfMargin
		for c, cell := range row {
			s.applyStyle(cellStyle(r, c))
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[c], s.lineHeight, s.tr(cell), "1", 0, "C", false, 0, "")
			x += widths[c]
		}
		s.currentY += s.lineHeight
	}
}

func buildPDF(a *analysis.Analysis, plotImages map[string][]byte) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "Letter", "") // Landscape, mm, Letter size
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph("Coil Energy Balance Report", "h1", "C")
	styler.addSpacer(5)
	if a == nil {
		styler.writeParagraph("No analysis results to display.", "normal", "L")
		return pdf
	}

	styler.writeParagraph(fmt.Sprintf("Workbook: %s", a.Workbook), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Run: %s", a.RunID), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Current column: %s   Voltage column: %s", a.Selection.Current, a.Selection.Voltage), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("R = %g   L = %g   Tests: %d selected, %d with a result",
		a.Session.Resistance, a.Session.Inductance, len(a.Session.Sheets), a.Results.Len()), "normal", "L")
	styler.addSpacer(5)

	styler.writeParagraph("Results (by most frequent voltage)", "h2", "L")
	results := a.Results.Rows()
	if len(results) > 0 {
		headers := []string{"Test", "Cutoff (ms)", "Delivered", "Resistive Loss", "Inductive", "Result", "Voltage"}
		rows := make([][]string, len(results))
		for i, r := range results {
			cutoff := ""
			if t, ok := a.Test(r.Test); ok {
				cutoff = fmt.Sprintf("%.2f", t.Cutoff)
			}
			rows[i] = []string{
				r.Test,
				cutoff,
				fmt.Sprintf("%.2f", r.Delivered),
				fmt.Sprintf("%.2f", r.ResistiveLoss),
				fmt.Sprintf("%.4f", r.InductiveEnergy),
				fmt.Sprintf("%.2f", r.Result),
				fmt.Sprintf("%.2f", r.RepresentativeVoltage),
			}
		}
		styler.writeTable(headers, []float64{0.28, 0.12, 0.12, 0.12, 0.12, 0.12, 0.12}, rows, func(row, col int) string {
			if col == 5 && results[row].Result < 0 {
				return "tableCellRed"
			}
			return "tableCell"
		})
	} else {
		styler.writeParagraph("No test produced a result.", "normal", "L")
	}
	styler.addSpacer(5)

	if len(a.Messages) > 0 {
		styler.writeParagraph("Skipped Tests", "h2", "L")
		for _, msg := range a.Messages {
			styler.writeParagraph("- "+strings.ReplaceAll(msg, "\n", " "), "normal", "L")
		}
	}

	imgWidth := pdfContentWidth * 0.8
	imgHeight := imgWidth / 2 // plots are rendered 2:1

	styler.newPage()
	styler.writeParagraph("Graphical Analysis", "h1", "C")
	styler.addSpacer(5)
	if img, ok := plotImages[ResultPlotKey]; ok && len(img) > 0 {
		styler.addImage(img, ResultPlotKey, imgWidth, imgHeight, "Most frequent voltage vs result")
	} else {
		styler.writeParagraph("Result plot not available.", "normal", "L")
	}

	for _, t := range a.Tests {
		key := TracePlotKey(t.Test)
		img, ok := plotImages[key]
		if !ok || len(img) == 0 {
			continue
		}
		styler.newPage()
		styler.writeParagraph(t.Test, "h2", "L")
		styler.addImage(img, key, imgWidth, imgHeight, fmt.Sprintf("%s - current vs time with local minima", t.Test))
	}
	return pdf
}

// WritePDFReport renders the report of an analysis pass to w.
func WritePDFReport(w io.Writer, a *analysis.Analysis, plotImages map[string][]byte) error {
	pdf := buildPDF(a, plotImages)
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "failed to render PDF")
	}
	return nil
}

// BuildPDFReport creates the PDF report at filepath.
func BuildPDFReport(filepath string, a *analysis.Analysis, plotImages map[string][]byte) error {
	pdf := buildPDF(a, plotImages)
	if err := pdf.OutputFileAndClose(filepath); err != nil {
		return errors.Wrapf(err, "failed to write %s", filepath)
	}
	return nil
}

// GeneratePlots renders every chart of an analysis pass, keyed for the PDF
// report. Plot failures are returned as messages, not errors.
func GeneratePlots(a *analysis.Analysis) (map[string][]byte, []string) {
	images := make(map[string][]byte)
	var problems []string

	if img, err := CreateResultPlot(a.Results); err != nil {
		problems = append(problems, fmt.Sprintf("Plot %s: %v", ResultPlotKey, err))
	} else {
		images[ResultPlotKey] = img
	}
	for _, t := range a.Tests {
		if t.Trace == nil {
			continue
		}
		img, err := CreateTracePlot(t)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Plot %s: %v", TracePlotKey(t.Test), err))
			continue
		}
		images[TracePlotKey(t.Test)] = img
	}
	return images, problems
}

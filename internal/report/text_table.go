package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/user/coil_analyzer_go/internal/analysis"
)

// RenderResultTable draws the ranked results as a plain-text table, used for
// the status log.
func RenderResultTable(w io.Writer, table *analysis.ResultTable) {
	output := tablewriter.NewWriter(w)
	output.SetHeader(ResultHeaders)
	output.SetAutoFormatHeaders(false)
	output.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range table.Rows() {
		output.Append([]string{
			r.Test,
			fmt.Sprintf("%.2f", r.Delivered),
			fmt.Sprintf("%.2f", r.ResistiveLoss),
			fmt.Sprintf("%.2f", r.Result),
			fmt.Sprintf("%.2f", r.RepresentativeVoltage),
		})
	}
	output.Render()
}

package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SummaryPDF renders the aggregate report as a one-page A4 document for
// download from the dashboard.
func SummaryPDF(summary Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", summary.GeneratedAt.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Appraisals: %d", summary.Appraisals))
	pdf.Ln(7)
	if summary.AverageRating != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Average rating: %.1f", *summary.AverageRating))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Overdue tasks: %d", summary.OverdueTasks))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "By status")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, status := range statusOrder {
		if count, ok := summary.StatusCounts[status]; ok {
			pdf.Cell(0, 7, fmt.Sprintf("%s: %d", status, count))
			pdf.Ln(6)
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "By department")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, dept := range summary.Departments {
		line := fmt.Sprintf("%s: %d appraisals, %d completed", dept.Department, dept.Appraisals, dept.Completed)
		if dept.AverageRating != nil {
			line += fmt.Sprintf(", avg rating %.1f", *dept.AverageRating)
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var statusOrder = []string{"Draft", "In Progress", "Completed", "Cancelled"}

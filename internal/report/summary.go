// Package report renders local PDF summaries from cached records,
// without another round trip to the backend.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hrsync/internal/entity"
)

// Summary is the cached data a report is rendered from.
type Summary struct {
	GeneratedAt time.Time
	User        entity.Record
	Timesheets  []entity.Record
	Leaves      []entity.Record
	Advances    []entity.Record
}

func (s Summary) totalHours() float64 {
	var total float64
	for _, entry := range s.Timesheets {
		if hours, ok := entity.Number(entry["totalHours"]); ok {
			total += hours
		}
	}
	return total
}

func statusCounts(records []entity.Record) map[string]int {
	counts := make(map[string]int)
	for _, record := range records {
		status, _ := record["status"].(string)
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}
	return counts
}

// Write renders the summary as a single-page PDF.
func Write(w io.Writer, s Summary) error {
	generated := s.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Activity Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if name, ok := entity.First(s.User, "name", "fullName", "email"); ok {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %v", name))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Timesheets")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Entries: %d", len(s.Timesheets)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total hours: %.2f", s.totalHours()))
	pdf.Ln(10)

	writeStatusSection(pdf, "Leave Requests", s.Leaves)
	writeStatusSection(pdf, "Advance Requests", s.Advances)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 8, "Rendered from locally cached data; the backend is authoritative.")

	return pdf.Output(w)
}

func writeStatusSection(pdf *gofpdf.Fpdf, title string, records []entity.Record) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Entries: %d", len(records)))
	pdf.Ln(7)
	counts := statusCounts(records)
	for _, status := range []string{"pending", "approved", "rejected"} {
		if count := counts[status]; count > 0 {
			pdf.Cell(0, 8, fmt.Sprintf("  %s: %d", status, count))
			pdf.Ln(7)
		}
	}
	pdf.Ln(3)
}

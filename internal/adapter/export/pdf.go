package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
)

// column widths in mm, sum fits an A4 landscape page with 10mm margins
var pdfWidths = []float64{30, 60, 28, 28, 22, 40, 40}

// PDFExporter renders the attendance sheet as a printable table.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (e *PDFExporter) Extension() string {
	return ".pdf"
}

func (e *PDFExporter) Export(sheet *models.AttendanceSheet) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(sheet.FileName(""), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	e.addHeader(pdf, sheet, tr)
	e.addTable(pdf, sheet, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, sheet *models.AttendanceSheet, tr func(string) string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Attendance", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)
	for _, line := range titleLines(sheet) {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addTable(pdf *gofpdf.Fpdf, sheet *models.AttendanceSheet, tr func(string) string) {
	header := func() {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		for i, c := range Columns {
			pdf.CellFormat(pdfWidths[i], 8, c, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	pdf.SetFont("Arial", "", 9)
	for _, r := range sheet.Records {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 9)
		}
		for i, v := range row(r) {
			pdf.CellFormat(pdfWidths[i], 7, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

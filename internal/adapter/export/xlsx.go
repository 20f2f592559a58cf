package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
)

const (
	sheetName = "Attendance"
	headerRow = 4
)

// XLSXExporter writes the attendance sheet as an Excel workbook: three title rows,
// the header on row 4 and one record per row below it.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) Extension() string {
	return ".xlsx"
}

func (e *XLSXExporter) Export(sheet *models.AttendanceSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, line := range titleLines(sheet) {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+1), line); err != nil {
			return nil, fmt.Errorf("failed to write title: %w", err)
		}
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", headerRow), &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), headerRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), last, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range sheet.Records {
		values := []any{r.Enrollment, r.Name, r.Latitude, r.Longitude, r.Section, r.Course, r.MarkedAt.UTC().Format(markedAtLayout)}
		cell := fmt.Sprintf("A%d", headerRow+1+i)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

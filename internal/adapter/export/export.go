package export

import (
	"fmt"
	"strconv"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
)

const (
	markedAtLayout = "2006-01-02 15:04:05"
)

// Columns is the header row of every export, in order.
var Columns = []string{"Enrollment", "Name", "Latitude", "Longitude", "Section", "Course", "Marked At"}

func titleLines(sheet *models.AttendanceSheet) []string {
	return []string{
		fmt.Sprintf("Date: %s", sheet.Lecture.Date),
		fmt.Sprintf("Topic: %s", sheet.Lecture.Topic),
		fmt.Sprintf("Total Students Present: %d", len(sheet.Records)),
	}
}

func row(r models.AttendanceRecord) []string {
	return []string{
		r.Enrollment,
		r.Name,
		strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		strconv.FormatFloat(r.Longitude, 'f', -1, 64),
		r.Section,
		r.Course,
		r.MarkedAt.UTC().Format(markedAtLayout),
	}
}

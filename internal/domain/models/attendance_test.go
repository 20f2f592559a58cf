package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByEnrollment(t *testing.T) {
	records := []AttendanceRecord{
		{Enrollment: "210"},
		{Enrollment: "B-12"},
		{Enrollment: "21"},
		{Enrollment: "1000"},
		{Enrollment: "A-7"},
	}

	SortByEnrollment(records)

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.Enrollment)
	}
	assert.Equal(t, []string{"21", "210", "1000", "A-7", "B-12"}, got)
}

func TestReadingValid(t *testing.T) {
	assert.True(t, Reading{Latitude: 90, Longitude: -180}.Valid())
	assert.True(t, Reading{Latitude: 37.7749, Longitude: -122.4194}.Valid())
	assert.False(t, Reading{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Reading{Latitude: 0, Longitude: 181}.Valid())
}

func TestAttendanceSheetFileName(t *testing.T) {
	s := AttendanceSheet{Lecture: Lecture{Date: "2026-10-19", Topic: "Graphs"}}
	assert.Equal(t, "2026-10-19_Graphs.xlsx", s.FileName(".xlsx"))
}

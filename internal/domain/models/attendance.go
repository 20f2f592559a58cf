package models

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reading is a latitude/longitude pair reported by the student's browser.
type Reading struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the reading lies on the globe.
func (r Reading) Valid() bool {
	return r.Latitude >= -90 && r.Latitude <= 90 && r.Longitude >= -180 && r.Longitude <= 180
}

type AttendanceRecord struct {
	LectureID  uuid.UUID `json:"-"`
	Enrollment string    `json:"Enrollment"`
	Name       string    `json:"Name"`
	Latitude   float64   `json:"Latitude"`
	Longitude  float64   `json:"Longitude"`
	Section    string    `json:"Section"`
	Course     string    `json:"Course"`
	MarkedAt   time.Time `json:"MarkedAt"`
}

// SortByEnrollment orders records by enrollment number, numerically when both
// sides are numbers and lexicographically otherwise.
func SortByEnrollment(records []AttendanceRecord) {
	slices.SortStableFunc(records, func(a, b AttendanceRecord) int {
		return CompareEnrollment(a.Enrollment, b.Enrollment)
	})
}

func CompareEnrollment(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na < nb {
			return -1
		}
		if na > nb {
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// AttendanceSheet is an export of one lecture.
type AttendanceSheet struct {
	Lecture Lecture
	Records []AttendanceRecord
}

// FileName mirrors "<date>_<topic>" used for downloaded sheets.
func (s AttendanceSheet) FileName(ext string) string {
	return s.Lecture.Date + "_" + s.Lecture.Topic + ext
}

package models

import (
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/google/uuid"
)

// AttendanceChanged is published whenever the attendance list of a lecture changes.
type AttendanceChanged struct {
	Event     types.AttendanceEvent `json:"event"`
	LectureID uuid.UUID             `json:"lecture_id"`
	Records   []AttendanceRecord    `json:"records"`
	Timestamp time.Time             `json:"timestamp"`
}

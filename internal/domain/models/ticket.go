package models

import (
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/google/uuid"
)

// Ticket carries a verified student and their reading between check-in steps.
type Ticket struct {
	Stage     types.TicketStage
	Student   Student
	Reading   Reading
	LectureID uuid.UUID // set once admitted
}

// Verification is the result of looking a student up.
type Verification struct {
	Student Student
	Reading Reading
	Ticket  string
}

// Admission is the result of a correct lecture code.
type Admission struct {
	Lecture Lecture
	Ticket  string
}

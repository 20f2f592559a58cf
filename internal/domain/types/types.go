package types

type ServiceMode string

// Attendance Service - serves the enrollment pages, verifies students, records attendance
// and feeds the lecturer dashboard
const (
	AttendanceService ServiceMode = "attendance-service"
)

// MarkStatus is the outcome of a mark attendance request
type MarkStatus string

func (s MarkStatus) String() string {
	return string(s)
}

const (
	MarkSuccess MarkStatus = "success"
	MarkAlready MarkStatus = "already"
)

// TicketStage tells how far a student got through the check-in flow
type TicketStage string

const (
	StageVerified TicketStage = "verified"
	StageAdmitted TicketStage = "admitted"
)

package types

import "errors"

var (
	ErrStudentNotFound = errors.New("enrollment number not found")
	ErrLocationMissing = errors.New("location not detected")
	ErrInvalidLocation = errors.New("invalid location coordinates")
	ErrInvalidCode     = errors.New("invalid admin code")

	ErrNoActiveLecture = errors.New("no active lecture")
	ErrLectureActive   = errors.New("a lecture is already active")
	ErrLectureEnded    = errors.New("lecture has ended")
	ErrNoAttendance    = errors.New("no attendance data")

	ErrInvalidTicket = errors.New("invalid or expired ticket")
	ErrTicketStage   = errors.New("ticket is not valid for this step")

	ErrDatabaseFailed = errors.New("database operation failed")
	ErrNotFound       = errors.New("requested item not found")
)

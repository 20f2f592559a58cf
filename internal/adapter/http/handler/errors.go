package handler

import (
	"errors"
	"net/http"

	t "github.com/Temutjin2k/geo-attendance/internal/domain/types"
)

const (
	msgLocationMissing = "Location not detected. Please enable location."
	msgInvalidLocation = "Invalid location coordinates."
	msgNotFound        = "Enrollment Number Not Found!"
	msgInvalidCode     = "Invalid Admin Code!"
	msgNoAttendance    = "No Attendance Data"
	msgSessionExpired  = "Your session has expired. Please enroll again."
	msgLectureEnded    = "The lecture has ended."
	msgInternal        = "Something went wrong. Please try again."
)

// flashMessage is the text shown to the student for err.
func flashMessage(err error) string {
	switch {
	case errors.Is(err, t.ErrLocationMissing):
		return msgLocationMissing
	case errors.Is(err, t.ErrInvalidLocation):
		return msgInvalidLocation
	case errors.Is(err, t.ErrStudentNotFound):
		return msgNotFound
	case errors.Is(err, t.ErrInvalidCode):
		return msgInvalidCode
	case errors.Is(err, t.ErrNoAttendance):
		return msgNoAttendance
	case IsOneOf(err, t.ErrInvalidTicket, t.ErrTicketStage):
		return msgSessionExpired
	case errors.Is(err, t.ErrLectureEnded):
		return msgLectureEnded
	default:
		return msgInternal
	}
}

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// internalErrorResponse returns 500 InternalServerError status
func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}

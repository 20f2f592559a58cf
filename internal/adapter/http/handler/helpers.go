package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	t "github.com/Temutjin2k/geo-attendance/internal/domain/types"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func GetCode(err error) int {
	switch {
	case IsOneOf(err, t.ErrLocationMissing, t.ErrInvalidLocation):
		return http.StatusUnprocessableEntity
	case IsOneOf(err, t.ErrInvalidTicket, t.ErrTicketStage):
		return http.StatusUnauthorized
	case IsOneOf(err, t.ErrInvalidCode):
		return http.StatusForbidden
	case IsOneOf(err, t.ErrStudentNotFound, t.ErrNoAttendance, t.ErrNotFound):
		return http.StatusNotFound
	case IsOneOf(err, t.ErrLectureEnded, t.ErrLectureActive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

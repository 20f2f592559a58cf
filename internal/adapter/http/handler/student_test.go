package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
)

func newStudentHandler(t *testing.T) (*Student, *mockAttendance) {
	t.Helper()
	pages, err := NewPages()
	require.NoError(t, err)

	svc := &mockAttendance{}
	return NewStudent(svc, pages, discardLogger()), svc
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestEnroll_RendersLocationInputs(t *testing.T) {
	h, _ := newStudentHandler(t)

	rec := httptest.NewRecorder()
	h.Enroll(rec, httptest.NewRequest(http.MethodGet, "/enroll", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="latitude"`)
	assert.Contains(t, body, `id="longitude"`)
	assert.Contains(t, body, `onclick="getLocation()"`)
	assert.Contains(t, body, `/static/locate.wasm`)
}

func TestValidate_FlashMessages(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		flash  string
	}{
		{"missing location", types.ErrLocationMissing, http.StatusUnprocessableEntity, "Location not detected. Please enable location."},
		{"invalid location", types.ErrInvalidLocation, http.StatusUnprocessableEntity, "Invalid location coordinates."},
		{"unknown student", types.ErrStudentNotFound, http.StatusNotFound, "Enrollment Number Not Found!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newStudentHandler(t)
			svc.On("Validate", mock.Anything, "21", "", "").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.Validate(rec, postForm("/validate", url.Values{"enrollment": {"21"}, "latitude": {""}, "longitude": {""}}))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.flash)
			assert.Contains(t, rec.Body.String(), `id="latitude"`, "stays on the enroll page")
		})
	}
}

func TestValidate_Success(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("Validate", mock.Anything, "21", "37.7749", "-122.4194").Return(&models.Verification{
		Student: models.Student{Enrollment: "21", Name: "Arman", ImageURL: "https://lh3.googleusercontent.com/d/abc"},
		Reading: models.Reading{Latitude: 37.7749, Longitude: -122.4194},
		Ticket:  "verified-ticket",
	}, nil)

	rec := httptest.NewRecorder()
	h.Validate(rec, postForm("/validate", url.Values{"enrollment": {"21"}, "latitude": {"37.7749"}, "longitude": {"-122.4194"}}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Arman")
	assert.Contains(t, body, "https://lh3.googleusercontent.com/d/abc")
	assert.Contains(t, body, `value="verified-ticket"`)
}

func TestSubmitCode_Redirects(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("SubmitCode", mock.Anything, "verified-ticket", "123456").
		Return(&models.Admission{Ticket: "admitted+ticket"}, nil)

	rec := httptest.NewRecorder()
	h.SubmitCode(rec, postForm("/submit_code", url.Values{"ticket": {"verified-ticket"}, "code": {"123456"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/lecture?ticket=admitted%2Bticket", rec.Header().Get("Location"))
}

func TestSubmitCode_WrongCodeShowsVerifyAgain(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("SubmitCode", mock.Anything, "verified-ticket", "654321").Return(nil, types.ErrInvalidCode)
	svc.On("Verified", mock.Anything, "verified-ticket").Return(&models.Verification{
		Student: models.Student{Enrollment: "21", Name: "Arman"},
		Ticket:  "verified-ticket",
	}, nil)

	rec := httptest.NewRecorder()
	h.SubmitCode(rec, postForm("/submit_code", url.Values{"ticket": {"verified-ticket"}, "code": {"654321"}}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Admin Code!")
	assert.Contains(t, rec.Body.String(), "Arman")
}

func TestSubmitCode_MalformedCodeSkipsService(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("Verified", mock.Anything, "verified-ticket").Return(&models.Verification{
		Student: models.Student{Enrollment: "21", Name: "Arman"},
		Ticket:  "verified-ticket",
	}, nil)

	rec := httptest.NewRecorder()
	h.SubmitCode(rec, postForm("/submit_code", url.Values{"ticket": {"verified-ticket"}, "code": {"12ab"}}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Admin Code!")
	svc.AssertNotCalled(t, "SubmitCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitCode_ExpiredTicket(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("SubmitCode", mock.Anything, "old", "123456").Return(nil, types.ErrInvalidTicket)

	rec := httptest.NewRecorder()
	h.SubmitCode(rec, postForm("/submit_code", url.Values{"ticket": {"old"}, "code": {"123456"}}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSessionExpired)
}

func TestLecture(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("Admitted", mock.Anything, "adm").Return(
		&models.Ticket{Student: models.Student{Enrollment: "21", Name: "Arman"}},
		&models.Lecture{ID: uuid.New(), Topic: "Graphs", Date: "2026-10-19"},
		nil,
	)

	rec := httptest.NewRecorder()
	h.Lecture(rec, httptest.NewRequest(http.MethodGet, "/lecture?ticket=adm", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Graphs")
	assert.Contains(t, rec.Body.String(), "2026-10-19")
	assert.Contains(t, rec.Body.String(), `data-ticket="adm"`)
}

func TestMarkAttendance(t *testing.T) {
	tests := []struct {
		name   string
		status types.MarkStatus
		err    error
		code   int
		body   string
	}{
		{"success", types.MarkSuccess, nil, http.StatusOK, `{"status":"success"}`},
		{"already", types.MarkAlready, nil, http.StatusOK, `{"status":"already"}`},
		{"lecture ended", "", types.ErrLectureEnded, http.StatusConflict, `{"error":"The lecture has ended."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newStudentHandler(t)
			svc.On("Mark", mock.Anything, "adm").Return(tt.status, tt.err)

			rec := httptest.NewRecorder()
			h.MarkAttendance(rec, postForm("/mark_attendance", url.Values{"ticket": {"adm"}}))

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestGetAttendance(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("List", mock.Anything).Return([]models.AttendanceRecord{
		{Enrollment: "21", Name: "Arman", Latitude: 1.5, Longitude: -2},
	}, nil)

	rec := httptest.NewRecorder()
	h.GetAttendance(rec, httptest.NewRequest(http.MethodGet, "/get_attendance", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "21", got[0]["Enrollment"])
	assert.Equal(t, 1.5, got[0]["Latitude"])
}

func TestGetAttendance_EmptyIsArray(t *testing.T) {
	h, svc := newStudentHandler(t)
	svc.On("List", mock.Anything).Return([]models.AttendanceRecord{}, nil)

	rec := httptest.NewRecorder()
	h.GetAttendance(rec, httptest.NewRequest(http.MethodGet, "/get_attendance", nil))

	assert.JSONEq(t, `[]`, rec.Body.String())
}

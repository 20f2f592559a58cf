package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
)

type mockAttendance struct {
	mock.Mock
}

func (m *mockAttendance) Validate(ctx context.Context, enrollment, latitude, longitude string) (*models.Verification, error) {
	args := m.Called(ctx, enrollment, latitude, longitude)
	v, _ := args.Get(0).(*models.Verification)
	return v, args.Error(1)
}

func (m *mockAttendance) Verified(ctx context.Context, rawTicket string) (*models.Verification, error) {
	args := m.Called(ctx, rawTicket)
	v, _ := args.Get(0).(*models.Verification)
	return v, args.Error(1)
}

func (m *mockAttendance) SubmitCode(ctx context.Context, rawTicket, code string) (*models.Admission, error) {
	args := m.Called(ctx, rawTicket, code)
	a, _ := args.Get(0).(*models.Admission)
	return a, args.Error(1)
}

func (m *mockAttendance) Admitted(ctx context.Context, rawTicket string) (*models.Ticket, *models.Lecture, error) {
	args := m.Called(ctx, rawTicket)
	t, _ := args.Get(0).(*models.Ticket)
	l, _ := args.Get(1).(*models.Lecture)
	return t, l, args.Error(2)
}

func (m *mockAttendance) Mark(ctx context.Context, rawTicket string) (types.MarkStatus, error) {
	args := m.Called(ctx, rawTicket)
	return args.Get(0).(types.MarkStatus), args.Error(1)
}

func (m *mockAttendance) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.AttendanceRecord)
	return r, args.Error(1)
}

type mockLectures struct {
	mock.Mock
}

func (m *mockLectures) Overview(ctx context.Context) (*models.Overview, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).(*models.Overview)
	return o, args.Error(1)
}

func (m *mockLectures) StartLecture(ctx context.Context, topic, date string) (*models.Lecture, error) {
	args := m.Called(ctx, topic, date)
	l, _ := args.Get(0).(*models.Lecture)
	return l, args.Error(1)
}

func (m *mockLectures) EndLecture(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockLectures) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockLectures) Sheet(ctx context.Context) (*models.AttendanceSheet, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.AttendanceSheet)
	return s, args.Error(1)
}

type stubExporter struct {
	ext  string
	data []byte
}

func (e stubExporter) ContentType() string { return "application/octet-stream" }
func (e stubExporter) Extension() string   { return e.ext }
func (e stubExporter) Export(*models.AttendanceSheet) ([]byte, error) {
	return e.data, nil
}

func discardLogger() logger.Logger {
	return logger.New(io.Discard, "test", logger.LevelError)
}

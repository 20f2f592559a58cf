package handler

import (
	"context"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
)

type (
	AttendanceService interface {
		Validate(ctx context.Context, enrollment, latitude, longitude string) (*models.Verification, error)
		Verified(ctx context.Context, rawTicket string) (*models.Verification, error)
		SubmitCode(ctx context.Context, rawTicket, code string) (*models.Admission, error)
		Admitted(ctx context.Context, rawTicket string) (*models.Ticket, *models.Lecture, error)
		Mark(ctx context.Context, rawTicket string) (types.MarkStatus, error)
		List(ctx context.Context) ([]models.AttendanceRecord, error)
	}

	LectureService interface {
		Overview(ctx context.Context) (*models.Overview, error)
		StartLecture(ctx context.Context, topic, date string) (*models.Lecture, error)
		EndLecture(ctx context.Context) error
		Reset(ctx context.Context) error
		Sheet(ctx context.Context) (*models.AttendanceSheet, error)
	}

	// Exporter renders an attendance sheet into a downloadable file.
	Exporter interface {
		ContentType() string
		Extension() string
		Export(sheet *models.AttendanceSheet) ([]byte, error)
	}
)

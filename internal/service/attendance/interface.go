package attendance

import (
	"context"
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/google/uuid"
)

type (
	StudentRepo interface {
		// GetByEnrollment returns types.ErrStudentNotFound for unknown numbers.
		GetByEnrollment(ctx context.Context, enrollment string) (*models.Student, error)
	}

	LectureRepo interface {
		// Active returns types.ErrNoActiveLecture when no lecture is running.
		Active(ctx context.Context) (*models.Lecture, error)
		// Create returns types.ErrLectureActive when another lecture is already active.
		Create(ctx context.Context, lecture *models.Lecture) error
		End(ctx context.Context, id uuid.UUID, at time.Time) error
	}

	AttendanceRepo interface {
		// Insert returns false when the student is already recorded for the lecture.
		Insert(ctx context.Context, record models.AttendanceRecord) (bool, error)
		ListByLecture(ctx context.Context, lectureID uuid.UUID) ([]models.AttendanceRecord, error)
		CountByLecture(ctx context.Context, lectureID uuid.UUID) (int, error)
		DeleteByLecture(ctx context.Context, lectureID uuid.UUID) (int64, error)
	}

	TicketService interface {
		Issue(ctx context.Context, t models.Ticket) (string, error)
		Parse(ctx context.Context, raw string, stage types.TicketStage) (*models.Ticket, error)
	}

	// Notifier delivers attendance changes to live dashboards.
	Notifier interface {
		AttendanceChanged(ctx context.Context, event models.AttendanceChanged) error
	}
)

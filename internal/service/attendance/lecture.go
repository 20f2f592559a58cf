package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
	"github.com/google/uuid"
)

// Overview returns the running lecture (nil when none) and how many students are in.
func (s *Service) Overview(ctx context.Context) (*models.Overview, error) {
	overview := &models.Overview{}
	err := s.tx.DoReadOnly(ctx, func(ctx context.Context) error {
		lecture, err := s.lectures.Active(ctx)
		if errors.Is(err, types.ErrNoActiveLecture) {
			return nil
		}
		if err != nil {
			return err
		}

		total, err := s.records.CountByLecture(ctx, lecture.ID)
		if err != nil {
			return err
		}
		overview.Lecture, overview.Total = lecture, total
		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return overview, nil
}

// StartLecture opens a lecture with a fresh code. When a lecture is already running
// it is returned unchanged.
func (s *Service) StartLecture(ctx context.Context, topic, date string) (*models.Lecture, error) {
	ctx = wrap.WithAction(ctx, types.ActionStartLecture)

	var lecture *models.Lecture
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		active, err := s.lectures.Active(ctx)
		if err == nil {
			lecture = active
			return nil
		}
		if !errors.Is(err, types.ErrNoActiveLecture) {
			return err
		}

		code, err := s.newCode()
		if err != nil {
			return fmt.Errorf("failed to generate lecture code: %w", err)
		}

		lecture = &models.Lecture{
			ID:        uuid.New(),
			Topic:     topic,
			Date:      date,
			Code:      code,
			Active:    true,
			CreatedAt: s.now().UTC(),
		}
		return s.lectures.Create(ctx, lecture)
	})
	if errors.Is(err, types.ErrLectureActive) {
		// lost a race with a concurrent start, use the winner
		return s.lectures.Active(ctx)
	}
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.ActiveLectureGauge.Set(1)
	s.l.Info(wrap.WithLectureID(ctx, lecture.ID.String()), "lecture active", "topic", lecture.Topic, "date", lecture.Date)

	return lecture, nil
}

// EndLecture invalidates the running lecture code. Its attendance disappears from
// the dashboard. Ending when nothing runs is a no-op.
func (s *Service) EndLecture(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, types.ActionEndLecture)

	lecture, err := s.lectures.Active(ctx)
	if errors.Is(err, types.ErrNoActiveLecture) {
		return nil
	}
	if err != nil {
		return wrap.Error(ctx, err)
	}
	ctx = wrap.WithLectureID(ctx, lecture.ID.String())

	err = s.lectures.End(ctx, lecture.ID, s.now().UTC())
	if errors.Is(err, types.ErrNotFound) {
		// a concurrent call ended it first
		s.l.Debug(ctx, "lecture already ended")
		return nil
	}
	if err != nil {
		return wrap.Error(ctx, err)
	}

	metrics.ActiveLectureGauge.Set(0)
	s.l.Info(ctx, "lecture ended")
	s.publish(ctx, types.EventLectureEnded, lecture.ID)

	return nil
}

// Reset clears the attendance of the running lecture and keeps its code.
func (s *Service) Reset(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, types.ActionResetAttendance)

	lecture, err := s.lectures.Active(ctx)
	if errors.Is(err, types.ErrNoActiveLecture) {
		return nil
	}
	if err != nil {
		return wrap.Error(ctx, err)
	}
	ctx = wrap.WithLectureID(ctx, lecture.ID.String())

	deleted, err := s.records.DeleteByLecture(ctx, lecture.ID)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	s.l.Info(ctx, "attendance reset", "deleted", deleted)
	s.publish(ctx, types.EventReset, lecture.ID)

	return nil
}

// Sheet returns the running lecture with its sorted attendance for export.
func (s *Service) Sheet(ctx context.Context) (*models.AttendanceSheet, error) {
	ctx = wrap.WithAction(ctx, types.ActionExportSheet)

	var sheet *models.AttendanceSheet
	err := s.tx.DoReadOnly(ctx, func(ctx context.Context) error {
		lecture, err := s.lectures.Active(ctx)
		if errors.Is(err, types.ErrNoActiveLecture) {
			return types.ErrNoAttendance
		}
		if err != nil {
			return err
		}

		records, err := s.records.ListByLecture(ctx, lecture.ID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return types.ErrNoAttendance
		}
		models.SortByEnrollment(records)

		sheet = &models.AttendanceSheet{Lecture: *lecture, Records: records}
		return nil
	})
	if errors.Is(err, types.ErrNoAttendance) {
		return nil, err
	}
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return sheet, nil
}

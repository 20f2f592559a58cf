package attendance

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
	"github.com/Temutjin2k/geo-attendance/pkg/trm"
	"github.com/google/uuid"
)

const (
	codeMin   = 100000
	codeRange = 900000 // codes are in [100000, 999999]
)

type Service struct {
	students StudentRepo
	lectures LectureRepo
	records  AttendanceRepo
	tickets  TicketService
	notifier Notifier
	tx       trm.TxManager

	newCode func() (string, error)
	now     func() time.Time
	l       logger.Logger
}

func NewService(
	students StudentRepo,
	lectures LectureRepo,
	records AttendanceRepo,
	tickets TicketService,
	notifier Notifier,
	tx trm.TxManager,
	l logger.Logger,
) *Service {
	return &Service{
		students: students,
		lectures: lectures,
		records:  records,
		tickets:  tickets,
		notifier: notifier,
		tx:       tx,
		newCode:  randomCode,
		now:      time.Now,
		l:        l,
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// Validate looks the student up and issues a verified ticket carrying the reading
// submitted by the enrollment form.
func (s *Service) Validate(ctx context.Context, enrollment, latitude, longitude string) (*models.Verification, error) {
	ctx = wrap.WithLogCtx(ctx, wrap.LogCtx{Action: types.ActionValidateStudent, Enrollment: enrollment})

	reading, err := ParseReading(latitude, longitude)
	if err != nil {
		metrics.CheckInRejectedTotal.WithLabelValues("validate", "location").Inc()
		return nil, wrap.Error(ctx, err)
	}

	enrollment = strings.TrimSpace(enrollment)
	if enrollment == "" {
		metrics.CheckInRejectedTotal.WithLabelValues("validate", "enrollment").Inc()
		return nil, wrap.Error(ctx, types.ErrStudentNotFound)
	}

	student, err := s.students.GetByEnrollment(ctx, enrollment)
	if err != nil {
		if errors.Is(err, types.ErrStudentNotFound) {
			metrics.CheckInRejectedTotal.WithLabelValues("validate", "enrollment").Inc()
		}
		return nil, wrap.Error(ctx, err)
	}
	student.ImageURL = models.DirectPhotoURL(student.ImageURL)

	ticket, err := s.tickets.Issue(ctx, models.Ticket{
		Stage:   types.StageVerified,
		Student: *student,
		Reading: reading,
	})
	if err != nil {
		return nil, err
	}

	s.l.Debug(ctx, "student verified", "latitude", reading.Latitude, "longitude", reading.Longitude)

	return &models.Verification{
		Student: *student,
		Reading: reading,
		Ticket:  ticket,
	}, nil
}

// ParseReading parses the coordinates posted by the enrollment form.
func ParseReading(latitude, longitude string) (models.Reading, error) {
	latitude, longitude = strings.TrimSpace(latitude), strings.TrimSpace(longitude)
	if latitude == "" || longitude == "" {
		return models.Reading{}, types.ErrLocationMissing
	}

	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return models.Reading{}, types.ErrInvalidLocation
	}
	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return models.Reading{}, types.ErrInvalidLocation
	}

	r := models.Reading{Latitude: lat, Longitude: lon}
	if !r.Valid() {
		return models.Reading{}, types.ErrInvalidLocation
	}
	return r, nil
}

// Verified decodes a verified ticket, used to render the verify page again.
func (s *Service) Verified(ctx context.Context, rawTicket string) (*models.Verification, error) {
	t, err := s.tickets.Parse(ctx, rawTicket, types.StageVerified)
	if err != nil {
		return nil, err
	}
	return &models.Verification{Student: t.Student, Reading: t.Reading, Ticket: rawTicket}, nil
}

// SubmitCode checks the lecture code and exchanges the verified ticket for an
// admitted one bound to the running lecture.
func (s *Service) SubmitCode(ctx context.Context, rawTicket, code string) (*models.Admission, error) {
	ctx = wrap.WithAction(ctx, types.ActionSubmitCode)

	t, err := s.tickets.Parse(ctx, rawTicket, types.StageVerified)
	if err != nil {
		metrics.CheckInRejectedTotal.WithLabelValues("submit_code", "ticket").Inc()
		return nil, err
	}
	ctx = wrap.WithEnrollment(ctx, t.Student.Enrollment)

	lecture, err := s.lectures.Active(ctx)
	if errors.Is(err, types.ErrNoActiveLecture) {
		metrics.CheckInRejectedTotal.WithLabelValues("submit_code", "no_lecture").Inc()
		return nil, wrap.Error(ctx, types.ErrInvalidCode)
	}
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	ctx = wrap.WithLectureID(ctx, lecture.ID.String())

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(code)), []byte(lecture.Code)) != 1 {
		metrics.CheckInRejectedTotal.WithLabelValues("submit_code", "code").Inc()
		return nil, wrap.Error(ctx, types.ErrInvalidCode)
	}

	admitted, err := s.tickets.Issue(ctx, models.Ticket{
		Stage:     types.StageAdmitted,
		Student:   t.Student,
		Reading:   t.Reading,
		LectureID: lecture.ID,
	})
	if err != nil {
		return nil, err
	}

	s.l.Debug(ctx, "student admitted")

	return &models.Admission{Lecture: *lecture, Ticket: admitted}, nil
}

// Admitted decodes an admitted ticket and returns the lecture it was issued for.
func (s *Service) Admitted(ctx context.Context, rawTicket string) (*models.Ticket, *models.Lecture, error) {
	t, err := s.tickets.Parse(ctx, rawTicket, types.StageAdmitted)
	if err != nil {
		return nil, nil, err
	}

	lecture, err := s.lectures.Active(ctx)
	if errors.Is(err, types.ErrNoActiveLecture) || (err == nil && lecture.ID != t.LectureID) {
		return nil, nil, wrap.Error(ctx, types.ErrLectureEnded)
	}
	if err != nil {
		return nil, nil, err
	}
	return t, lecture, nil
}

// Mark records attendance for the student on an admitted ticket. Marking twice
// returns types.MarkAlready.
func (s *Service) Mark(ctx context.Context, rawTicket string) (types.MarkStatus, error) {
	ctx = wrap.WithAction(ctx, types.ActionMarkAttendance)

	t, err := s.tickets.Parse(ctx, rawTicket, types.StageAdmitted)
	if err != nil {
		return "", err
	}
	ctx = wrap.WithLogCtx(ctx, wrap.LogCtx{Enrollment: t.Student.Enrollment, LectureID: t.LectureID.String()})

	var inserted bool
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		lecture, err := s.lectures.Active(ctx)
		if errors.Is(err, types.ErrNoActiveLecture) {
			return types.ErrLectureEnded
		}
		if err != nil {
			return err
		}
		if lecture.ID != t.LectureID {
			return types.ErrLectureEnded
		}

		inserted, err = s.records.Insert(ctx, models.AttendanceRecord{
			LectureID:  lecture.ID,
			Enrollment: t.Student.Enrollment,
			Name:       t.Student.Name,
			Latitude:   t.Reading.Latitude,
			Longitude:  t.Reading.Longitude,
			Section:    t.Student.Section,
			Course:     t.Student.Course,
			MarkedAt:   s.now().UTC(),
		})
		return err
	})
	if err != nil {
		metrics.AttendanceMarkedTotal.WithLabelValues("error").Inc()
		return "", wrap.Error(ctx, fmt.Errorf("failed to mark attendance: %w", err))
	}

	if !inserted {
		metrics.AttendanceMarkedTotal.WithLabelValues(types.MarkAlready.String()).Inc()
		s.l.Debug(ctx, "attendance already marked")
		return types.MarkAlready, nil
	}

	metrics.AttendanceMarkedTotal.WithLabelValues(types.MarkSuccess.String()).Inc()
	s.l.Info(ctx, "attendance marked")

	s.publish(ctx, types.EventNewAttendance, t.LectureID)

	return types.MarkSuccess, nil
}

// List returns the attendance of the running lecture sorted by enrollment.
// It is empty when no lecture is running.
func (s *Service) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	ctx = wrap.WithAction(ctx, types.ActionListAttendance)

	records := []models.AttendanceRecord{}
	err := s.tx.DoReadOnly(ctx, func(ctx context.Context) error {
		lecture, err := s.lectures.Active(ctx)
		if errors.Is(err, types.ErrNoActiveLecture) {
			return nil
		}
		if err != nil {
			return err
		}

		records, err = s.records.ListByLecture(ctx, lecture.ID)
		return err
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	models.SortByEnrollment(records)

	return records, nil
}

func (s *Service) publish(ctx context.Context, event types.AttendanceEvent, lectureID uuid.UUID) {
	records := []models.AttendanceRecord{}
	if event == types.EventNewAttendance {
		var err error
		records, err = s.records.ListByLecture(ctx, lectureID)
		if err != nil {
			s.l.Error(wrap.ErrorCtx(ctx, err), "failed to load attendance for notification", err)
			return
		}
		models.SortByEnrollment(records)
	}

	if err := s.notifier.AttendanceChanged(ctx, models.AttendanceChanged{
		Event:     event,
		LectureID: lectureID,
		Records:   records,
		Timestamp: s.now().UTC(),
	}); err != nil {
		s.l.Error(wrap.ErrorCtx(ctx, err), "failed to notify dashboards", err)
	}
}

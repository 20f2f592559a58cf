package attendance

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/internal/service/ticket"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	"github.com/google/uuid"
)

type memStudents map[string]models.Student

func (m memStudents) GetByEnrollment(_ context.Context, enrollment string) (*models.Student, error) {
	s, ok := m[enrollment]
	if !ok {
		return nil, types.ErrStudentNotFound
	}
	return &s, nil
}

type memLectures struct {
	mu       sync.Mutex
	lectures []*models.Lecture
}

func (m *memLectures) Active(context.Context) (*models.Lecture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lectures {
		if l.Active {
			cp := *l
			return &cp, nil
		}
	}
	return nil, types.ErrNoActiveLecture
}

func (m *memLectures) Create(_ context.Context, lecture *models.Lecture) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lectures {
		if l.Active {
			return types.ErrLectureActive
		}
	}
	cp := *lecture
	m.lectures = append(m.lectures, &cp)
	return nil
}

func (m *memLectures) End(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lectures {
		if l.ID == id {
			l.Active = false
			l.EndedAt = &at
			return nil
		}
	}
	return types.ErrNotFound
}

type memRecords struct {
	mu      sync.Mutex
	records []models.AttendanceRecord
}

func (m *memRecords) Insert(_ context.Context, rec models.AttendanceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.LectureID == rec.LectureID && r.Enrollment == rec.Enrollment {
			return false, nil
		}
	}
	m.records = append(m.records, rec)
	return true, nil
}

func (m *memRecords) ListByLecture(_ context.Context, id uuid.UUID) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AttendanceRecord{}
	for _, r := range m.records {
		if r.LectureID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRecords) CountByLecture(ctx context.Context, id uuid.UUID) (int, error) {
	list, err := m.ListByLecture(ctx, id)
	return len(list), err
}

func (m *memRecords) DeleteByLecture(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if r.LectureID == id {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.AttendanceChanged
}

func (n *recordingNotifier) AttendanceChanged(_ context.Context, e models.AttendanceChanged) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

// passTx runs fn directly and counts how each kind of transaction was requested.
type passTx struct {
	readWrite atomic.Int32
	readOnly  atomic.Int32
}

func (tx *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.readWrite.Add(1)
	return fn(ctx)
}

func (tx *passTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.readOnly.Add(1)
	return fn(ctx)
}

type fixture struct {
	svc      *Service
	lectures *memLectures
	records  *memRecords
	notifier *recordingNotifier
	tx       *passTx
}

func newFixture() *fixture {
	f := &fixture{
		lectures: &memLectures{},
		records:  &memRecords{},
		notifier: &recordingNotifier{},
		tx:       &passTx{},
	}

	students := memStudents{
		"210": {Enrollment: "210", Name: "Dana", Section: "B", Course: "CS"},
		"21": {
			Enrollment: "21",
			Name:       "Arman",
			Section:    "A",
			Course:     "CS",
			ImageURL:   "https://drive.google.com/file/d/1XyZ/view",
		},
	}

	f.svc = NewService(
		students,
		f.lectures,
		f.records,
		ticket.NewTokenService("test-secret", time.Hour),
		f.notifier,
		f.tx,
		logger.New(io.Discard, "test", logger.LevelError),
	)
	f.svc.newCode = func() (string, error) { return "123456", nil }

	return f
}

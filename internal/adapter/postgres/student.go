package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
)

type StudentRepo struct {
	db *pgxpool.Pool
}

func NewStudentRepo(db *pgxpool.Pool) *StudentRepo {
	return &StudentRepo{db: db}
}

func (r *StudentRepo) GetByEnrollment(ctx context.Context, enrollment string) (_ *models.Student, err error) {
	const op = "StudentRepo.GetByEnrollment"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "students_get", ignoreNotFound(err), time.Since(start))
	}(time.Now())

	query := `
		SELECT enrollment, name, section, course, image_url
		FROM students
		WHERE enrollment = $1`

	var s models.Student
	if err = TxorDB(ctx, r.db).QueryRow(ctx, query, enrollment).Scan(
		&s.Enrollment,
		&s.Name,
		&s.Section,
		&s.Course,
		&s.ImageURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrStudentNotFound
		}
		return nil, dbError(ctx, op, err)
	}

	return &s, nil
}

// Upsert inserts the roster rows or refreshes existing ones. It returns the number of rows written.
func (r *StudentRepo) Upsert(ctx context.Context, students []models.Student) (int, error) {
	const op = "StudentRepo.Upsert"
	query := `
		INSERT INTO students (enrollment, name, section, course, image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (enrollment) DO UPDATE
		SET name = EXCLUDED.name,
		    section = EXCLUDED.section,
		    course = EXCLUDED.course,
		    image_url = EXCLUDED.image_url,
		    updated_at = now()`

	batch := &pgx.Batch{}
	for _, s := range students {
		batch.Queue(query, s.Enrollment, s.Name, s.Section, s.Course, s.ImageURL)
	}

	start := time.Now()
	results := r.db.SendBatch(ctx, batch)
	written := 0
	var err error
	for range students {
		if _, err = results.Exec(); err != nil {
			break
		}
		written++
	}
	if cerr := results.Close(); err == nil {
		err = cerr
	}
	metrics.RecordDatabaseQuery(serviceName, "students_upsert", err, time.Since(start))

	if err != nil {
		return written, dbError(ctx, op, err)
	}
	return written, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
	"github.com/Temutjin2k/geo-attendance/pkg/postgres"
)

type AttendanceRepo struct {
	db *pgxpool.Pool
}

func NewAttendanceRepo(db *pgxpool.Pool) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Insert records the student once per lecture. A repeated mark is reported as false.
func (r *AttendanceRepo) Insert(ctx context.Context, rec models.AttendanceRecord) (_ bool, err error) {
	const op = "AttendanceRepo.Insert"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "attendance_insert", err, time.Since(start))
	}(time.Now())

	query := `
		INSERT INTO attendance (lecture_id, enrollment, name, latitude, longitude, section, course, marked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (lecture_id, enrollment) DO NOTHING`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query,
		rec.LectureID,
		rec.Enrollment,
		rec.Name,
		rec.Latitude,
		rec.Longitude,
		rec.Section,
		rec.Course,
		rec.MarkedAt,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return false, types.ErrLectureEnded
		}
		return false, dbError(ctx, op, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *AttendanceRepo) ListByLecture(ctx context.Context, lectureID uuid.UUID) (_ []models.AttendanceRecord, err error) {
	const op = "AttendanceRepo.ListByLecture"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "attendance_list", err, time.Since(start))
	}(time.Now())

	query := `
		SELECT lecture_id, enrollment, name, latitude, longitude, section, course, marked_at
		FROM attendance
		WHERE lecture_id = $1
		ORDER BY marked_at`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, lectureID)
	if err != nil {
		return nil, dbError(ctx, op, err)
	}
	defer rows.Close()

	records := make([]models.AttendanceRecord, 0)
	for rows.Next() {
		var rec models.AttendanceRecord
		if err = rows.Scan(
			&rec.LectureID,
			&rec.Enrollment,
			&rec.Name,
			&rec.Latitude,
			&rec.Longitude,
			&rec.Section,
			&rec.Course,
			&rec.MarkedAt,
		); err != nil {
			return nil, dbError(ctx, op+": scan", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, dbError(ctx, op, err)
	}

	return records, nil
}

func (r *AttendanceRepo) CountByLecture(ctx context.Context, lectureID uuid.UUID) (_ int, err error) {
	const op = "AttendanceRepo.CountByLecture"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "attendance_count", err, time.Since(start))
	}(time.Now())

	var count int
	if err = TxorDB(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance WHERE lecture_id = $1`, lectureID,
	).Scan(&count); err != nil {
		return 0, dbError(ctx, op, err)
	}
	return count, nil
}

func (r *AttendanceRepo) DeleteByLecture(ctx context.Context, lectureID uuid.UUID) (_ int64, err error) {
	const op = "AttendanceRepo.DeleteByLecture"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "attendance_delete", err, time.Since(start))
	}(time.Now())

	tag, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM attendance WHERE lecture_id = $1`, lectureID)
	if err != nil {
		return 0, dbError(ctx, op, err)
	}
	return tag.RowsAffected(), nil
}

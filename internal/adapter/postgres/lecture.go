package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
	"github.com/Temutjin2k/geo-attendance/pkg/postgres"
)

type LectureRepo struct {
	db *pgxpool.Pool
}

func NewLectureRepo(db *pgxpool.Pool) *LectureRepo {
	return &LectureRepo{db: db}
}

func (r *LectureRepo) Active(ctx context.Context) (_ *models.Lecture, err error) {
	const op = "LectureRepo.Active"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "lectures_active", ignoreNotFound(err), time.Since(start))
	}(time.Now())

	query := `
		SELECT id, topic, lecture_date, code, active, created_at, ended_at
		FROM lectures
		WHERE active
		LIMIT 1`

	var l models.Lecture
	if err = TxorDB(ctx, r.db).QueryRow(ctx, query).Scan(
		&l.ID,
		&l.Topic,
		&l.Date,
		&l.Code,
		&l.Active,
		&l.CreatedAt,
		&l.EndedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNoActiveLecture
		}
		return nil, dbError(ctx, op, err)
	}

	return &l, nil
}

func (r *LectureRepo) Create(ctx context.Context, lecture *models.Lecture) (err error) {
	const op = "LectureRepo.Create"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "lectures_create", err, time.Since(start))
	}(time.Now())

	query := `
		INSERT INTO lectures (id, topic, lecture_date, code, active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)`

	if _, err = TxorDB(ctx, r.db).Exec(ctx, query,
		lecture.ID,
		lecture.Topic,
		lecture.Date,
		lecture.Code,
		lecture.CreatedAt,
	); err != nil {
		if postgres.IsUniqueViolation(err) {
			return types.ErrLectureActive
		}
		return dbError(ctx, op, err)
	}

	return nil
}

func (r *LectureRepo) End(ctx context.Context, id uuid.UUID, at time.Time) (err error) {
	const op = "LectureRepo.End"
	defer func(start time.Time) {
		metrics.RecordDatabaseQuery(serviceName, "lectures_end", err, time.Since(start))
	}(time.Now())

	query := `
		UPDATE lectures
		SET active = FALSE, ended_at = $2
		WHERE id = $1 AND active`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, id, at)
	if err != nil {
		return dbError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}

	return nil
}

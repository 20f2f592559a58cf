package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/trm"
)

const serviceName = "attendance"

// Querier is the part of pgx shared by the pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// TxorDB returns the transaction stored in ctx by trm, or the pool.
func TxorDB(ctx context.Context, db *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(trm.TxKey).(pgx.Tx); ok {
		return tx
	}
	return db
}

// dbError marks a driver failure as types.ErrDatabaseFailed and attaches the log context.
func dbError(ctx context.Context, op string, err error) error {
	ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
	return wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrDatabaseFailed, err))
}

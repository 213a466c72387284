package pgutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
)

// ErrTxConflict is returned when a transaction keeps losing serialization
// races after maxAttempts tries. Callers may retry the whole operation.
var ErrTxConflict = errors.New("transaction conflict")

const maxAttempts = 3

// WithTx runs fn inside a transaction: commit if fn returns nil, rollback
// otherwise.
//
// Serialization failures and deadlocks (SQLSTATE 40001/40P01) are retried
// transparently up to maxAttempts; business errors from fn are never
// retried.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = runTx(ctx, db, fn)
		if err == nil || !isRetryable(err) {
			return err
		}

		metrics.TxRetries.Inc()
	}

	return fmt.Errorf("%w: %v", ErrTxConflict, err)
}

func runTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil) // default isolation level
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err)
		}
		return fmt.Errorf("fn: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	// serialization_failure, deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

package ledgerlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
)

var _ ledgerlog.Log = (*logRepo)(nil)

type logRepo struct{ db *sql.DB }

func New(db *sql.DB) *logRepo {
	return &logRepo{db: db}
}

func (r *logRepo) Append(tx *sql.Tx, rec ledgerlog.Record) error {
	_, err := tx.Exec(`
		INSERT INTO transactions (transaction_id, sender_id, receiver_id, type, amount, product_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.TransactionID, rec.SenderID, rec.ReceiverID, rec.Type, rec.Amount, rec.ProductID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return ledgerlog.ErrDuplicateRecord
			}
		}

		return fmt.Errorf("append record: %w", err)
	}

	return nil
}

func (r *logRepo) ListForAccount(ctx context.Context, accountID string) ([]ledgerlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.seq, t.transaction_id, t.sender_id, t.receiver_id, t.type,
		       t.amount, t.product_id, t.created_at, p.name
		FROM transactions t
		LEFT JOIN products p ON p.id = t.product_id
		WHERE t.sender_id = $1 OR t.receiver_id = $1
		ORDER BY t.seq DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []ledgerlog.Entry

	for rows.Next() {
		var e ledgerlog.Entry

		err = rows.Scan(&e.Seq, &e.TransactionID, &e.SenderID, &e.ReceiverID,
			&e.Type, &e.Amount, &e.ProductID, &e.CreatedAt, &e.ProductName)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		out = append(out, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return out, nil
}

// Package ledgerlog is the append-only transaction log. Rows are written
// once, inside the same database transaction as the balance mutation they
// record, and never updated or deleted.
package ledgerlog

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrDuplicateRecord = errors.New("duplicate transaction record")

// Record is one balance-affecting event. Amount's unit depends on Type
// (credits for mint-credits/buy-credits/purchase, tokens otherwise).
type Record struct {
	TransactionID string
	SenderID      string
	ReceiverID    string
	Type          string
	Amount        int64
	ProductID     *string
}

// Entry is a logged record plus the storage-assigned ordering fields and the
// joined product details, if any.
type Entry struct {
	Record
	Seq         int64
	CreatedAt   time.Time
	ProductName *string
}

type Log interface {
	// Append writes the record. A reused TransactionID yields
	// ErrDuplicateRecord.
	Append(tx *sql.Tx, rec Record) error

	// ListForAccount returns entries where the account is sender or
	// receiver, newest first.
	ListForAccount(ctx context.Context, accountID string) ([]Entry, error)
}

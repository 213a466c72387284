package balances

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Balance is one account's pair of counters. Both are non-negative integers;
// the CHECK constraints on the balances table back that up.
type Balance struct {
	AccountID     string
	CreditBalance int64
	EnergyBalance int64
	IsBank        bool
}

type Balances interface {
	Get(ctx context.Context, accountID string) (Balance, error)
	List(ctx context.Context) ([]Balance, error)

	// CreateIfAbsent inserts a new account row with the given counters.
	// An existing row is left untouched.
	CreateIfAbsent(tx *sql.Tx, accountID string, credits, tokens int64, isBank bool) error

	// LockAndGet takes a FOR UPDATE row lock so concurrent mutations of the
	// same account serialize.
	LockAndGet(tx *sql.Tx, accountID string) (Balance, error)

	// ApplyDelta adjusts both counters in one guarded update. It refuses
	// the whole delta with ErrInsufficientFunds if either counter would go
	// negative, and returns the resulting balance on success.
	ApplyDelta(tx *sql.Tx, accountID string, creditDelta, energyDelta int64) (Balance, error)
}

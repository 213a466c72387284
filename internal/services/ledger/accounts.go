package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
)

// GetBalance returns the account's counters, initializing the account to the
// starting grant on first read.
func (l *Ledger) GetBalance(ctx context.Context, userID string) (bal balances.Balance, err error) {
	defer func() { metrics.ObserveOp("get_balance", err) }()

	if userID == "" {
		return balances.Balance{}, fmt.Errorf("%w: empty account id", ErrInvalidInput)
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		return l.ensureAccount(tx, userID)
	})
	if err != nil {
		return balances.Balance{}, fmt.Errorf("initialize account: %w", err)
	}

	bal, err = l.balances.Get(ctx, userID)
	if err != nil {
		return balances.Balance{}, fmt.Errorf("get balance: %w", err)
	}

	return bal, nil
}

// ListAccounts is the admin roster of every account and its counters.
func (l *Ledger) ListAccounts(ctx context.Context, callerID string) (out []balances.Balance, err error) {
	defer func() { metrics.ObserveOp("list_accounts", err) }()

	err = l.requireAdmin(callerID)
	if err != nil {
		return nil, err
	}

	out, err = l.balances.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return out, nil
}

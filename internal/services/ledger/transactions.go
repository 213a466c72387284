package ledger

import (
	"context"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
)

// ListTransactions returns every log entry the account appears in, newest
// first.
func (l *Ledger) ListTransactions(ctx context.Context, userID string) (out []ledgerlog.Entry, err error) {
	defer func() { metrics.ObserveOp("list_transactions", err) }()

	if userID == "" {
		return nil, fmt.Errorf("%w: empty account id", ErrInvalidInput)
	}

	out, err = l.log.ListForAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return out, nil
}

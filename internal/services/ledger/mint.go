package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
)

// Mint creates new supply out of nothing, crediting the bank account. Only
// the bank identity may call it. Two log records are written, one per
// counter, with the system pseudo-sender.
func (l *Ledger) Mint(ctx context.Context, callerID string, credits, tokens int64) (err error) {
	defer func() { metrics.ObserveOp("mint", err) }()

	err = l.requireAdmin(callerID)
	if err != nil {
		return err
	}

	if credits <= 0 || tokens <= 0 {
		return fmt.Errorf("%w: credits and tokens must be positive", ErrInvalidAmount)
	}

	return l.withTx(ctx, func(tx *sql.Tx) error {
		_, err := l.balances.LockAndGet(tx, l.bankID)
		if err != nil {
			return fmt.Errorf("lock bank account: %w", err)
		}

		_, err = l.balances.ApplyDelta(tx, l.bankID, credits, tokens)
		if err != nil {
			return fmt.Errorf("credit bank account: %w", err)
		}

		err = l.log.Append(tx, ledgerlog.Record{
			TransactionID: uuid.NewString(),
			SenderID:      SystemSenderID,
			ReceiverID:    l.bankID,
			Type:          RecordMintCredits,
			Amount:        credits,
		})
		if err != nil {
			return fmt.Errorf("log minted credits: %w", err)
		}

		err = l.log.Append(tx, ledgerlog.Record{
			TransactionID: uuid.NewString(),
			SenderID:      SystemSenderID,
			ReceiverID:    l.bankID,
			Type:          RecordMintTokens,
			Amount:        tokens,
		})
		if err != nil {
			return fmt.Errorf("log minted tokens: %w", err)
		}

		return nil
	})
}

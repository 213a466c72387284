package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
)

// Transfer executes one of the balance-to-balance trades between the user
// and the bank. Both sides move by matching amounts, so totals across all
// accounts are conserved — only Mint changes supply.
//
// Amounts are credits for BuyCredits and tokens for BuyTokens/SellTokens;
// token amounts must be positive multiples of TokensPerCredit.
func (l *Ledger) Transfer(ctx context.Context, userID string, kind TransferKind, amount int64) (bal balances.Balance, err error) {
	defer func() { metrics.ObserveOp("transfer", err) }()

	if userID == "" {
		return balances.Balance{}, fmt.Errorf("%w: empty account id", ErrInvalidInput)
	}
	if amount <= 0 {
		return balances.Balance{}, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	var userDelta, bankDelta struct{ credits, tokens int64 }

	switch kind {
	case BuyCredits:
		userDelta.credits, bankDelta.credits = amount, -amount

	case BuyTokens:
		if amount%TokensPerCredit != 0 {
			return balances.Balance{}, fmt.Errorf("%w: token amount must be a multiple of %d", ErrInvalidAmount, TokensPerCredit)
		}

		cost := amount / TokensPerCredit
		userDelta.credits, userDelta.tokens = -cost, amount
		bankDelta.credits, bankDelta.tokens = cost, -amount

	case SellTokens:
		if amount%TokensPerCredit != 0 {
			return balances.Balance{}, fmt.Errorf("%w: token amount must be a multiple of %d", ErrInvalidAmount, TokensPerCredit)
		}

		proceeds := amount / TokensPerCredit
		userDelta.credits, userDelta.tokens = proceeds, -amount
		bankDelta.credits, bankDelta.tokens = -proceeds, amount

	default:
		return balances.Balance{}, fmt.Errorf("%w: unknown transfer kind %q", ErrInvalidInput, kind)
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		err := l.ensureAccount(tx, userID)
		if err != nil {
			return err
		}

		_, _, err = l.lockBalancePair(tx, userID, l.bankID)
		if err != nil {
			return err
		}

		bal, err = l.balances.ApplyDelta(tx, userID, userDelta.credits, userDelta.tokens)
		if err != nil {
			return fmt.Errorf("debit user: %w", err)
		}

		_, err = l.balances.ApplyDelta(tx, l.bankID, bankDelta.credits, bankDelta.tokens)
		if err != nil {
			return fmt.Errorf("debit bank: %w", err)
		}

		err = l.log.Append(tx, ledgerlog.Record{
			TransactionID: uuid.NewString(),
			SenderID:      senderFor(kind, userID, l.bankID),
			ReceiverID:    receiverFor(kind, userID, l.bankID),
			Type:          string(kind),
			Amount:        amount,
		})
		if err != nil {
			return fmt.Errorf("log trade: %w", err)
		}

		return nil
	})
	if err != nil {
		return balances.Balance{}, err
	}

	return bal, nil
}

func senderFor(kind TransferKind, userID, bankID string) string {
	if kind == BuyCredits {
		return bankID
	}

	return userID
}

func receiverFor(kind TransferKind, userID, bankID string) string {
	if kind == BuyCredits {
		return userID
	}

	return bankID
}

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
	"github.com/wattmarket/wattmarket/internal/repos/products"
)

// Purchase buys one unit of the product: user credits down by the price,
// bank credits up by the price, stock down by one, all or nothing. Stock and
// balance are validated under row locks, so two purchases racing for the
// last unit serialize and the loser sees ErrOutOfStock.
func (l *Ledger) Purchase(ctx context.Context, userID, productID string) (err error) {
	defer func() { metrics.ObserveOp("purchase", err) }()

	if userID == "" || productID == "" {
		return fmt.Errorf("%w: account and product ids required", ErrInvalidInput)
	}

	return l.withTx(ctx, func(tx *sql.Tx) error {
		err := l.ensureAccount(tx, userID)
		if err != nil {
			return err
		}

		product, err := l.products.LockAndGet(tx, productID)
		if err != nil {
			return fmt.Errorf("lock product: %w", err)
		}

		if product.InStock <= 0 {
			return products.ErrOutOfStock
		}

		_, _, err = l.lockBalancePair(tx, userID, l.bankID)
		if err != nil {
			return err
		}

		_, err = l.balances.ApplyDelta(tx, userID, -product.Price, 0)
		if err != nil {
			return fmt.Errorf("debit user: %w", err)
		}

		_, err = l.balances.ApplyDelta(tx, l.bankID, product.Price, 0)
		if err != nil {
			return fmt.Errorf("credit bank: %w", err)
		}

		err = l.products.DecrementStock(tx, productID)
		if err != nil {
			return fmt.Errorf("take stock: %w", err)
		}

		err = l.log.Append(tx, ledgerlog.Record{
			TransactionID: uuid.NewString(),
			SenderID:      userID,
			ReceiverID:    l.bankID,
			Type:          RecordPurchase,
			Amount:        product.Price,
			ProductID:     &product.ID,
		})
		if err != nil {
			return fmt.Errorf("log purchase: %w", err)
		}

		return nil
	})
}

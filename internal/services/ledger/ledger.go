// Package ledger is the transaction engine. Every operation follows the
// same shape: validate, lock the affected rows, mutate them, append the
// matching transaction-log records, commit — one database transaction, so no
// observer ever sees a partially applied state.
//
// Lock order is fixed to keep concurrent operations deadlock-free: product
// row first (purchases only), then balance rows in ascending account id,
// then appliance rows.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/infra/pgutils"
	"github.com/wattmarket/wattmarket/internal/repos/appliances"
	pgappliances "github.com/wattmarket/wattmarket/internal/repos/appliances/postgres"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
	pgbalances "github.com/wattmarket/wattmarket/internal/repos/balances/postgres"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
	pgledgerlog "github.com/wattmarket/wattmarket/internal/repos/ledgerlog/postgres"
	"github.com/wattmarket/wattmarket/internal/repos/products"
	pgproducts "github.com/wattmarket/wattmarket/internal/repos/products/postgres"
)

type Ledger struct {
	db         *sql.DB
	bankID     string
	balances   balances.Balances
	appliances appliances.Appliances
	products   products.Products
	log        ledgerlog.Log
}

// New wires the engine over its four stores. bankAccountID is the reserved
// account acting as trade counterparty, mint target and admin identity.
func New(db *sql.DB, bankAccountID string) *Ledger {
	return &Ledger{
		db:         db,
		bankID:     bankAccountID,
		balances:   pgbalances.New(db),
		appliances: pgappliances.New(db),
		products:   pgproducts.New(db),
		log:        pgledgerlog.New(db),
	}
}

// withTx runs fn atomically and maps exhausted serialization retries to the
// engine's conflict error.
func (l *Ledger) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	err := pgutils.WithTx(ctx, l.db, fn)
	if errors.Is(err, pgutils.ErrTxConflict) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	return err
}

// requireAdmin gates privileged operations on the reserved identity. The
// check lives here, not in the handlers, so no internal path bypasses it.
func (l *Ledger) requireAdmin(callerID string) error {
	if callerID != l.bankID {
		return ErrUnauthorized
	}

	return nil
}

// ensureAccount materializes the balance row (starting grant) and the
// default appliance set for a first-seen account. Idempotent; every entry
// point that touches a user account goes through it so the two lazily
// created structures can never diverge.
func (l *Ledger) ensureAccount(tx *sql.Tx, accountID string) error {
	err := l.balances.CreateIfAbsent(tx, accountID, StartingCredits, 0, false)
	if err != nil {
		return fmt.Errorf("ensure balance: %w", err)
	}

	err = l.appliances.CreateDefaults(tx, accountID)
	if err != nil {
		return fmt.Errorf("ensure appliances: %w", err)
	}

	return nil
}

// lockBalancePair locks both accounts in ascending id order and returns
// them as (first requested, second requested).
func (l *Ledger) lockBalancePair(tx *sql.Tx, a, b string) (balances.Balance, balances.Balance, error) {
	lockFirst, lockSecond := a, b
	if lockSecond < lockFirst {
		lockFirst, lockSecond = lockSecond, lockFirst
	}

	locked := make(map[string]balances.Balance, 2)

	for _, id := range []string{lockFirst, lockSecond} {
		bal, err := l.balances.LockAndGet(tx, id)
		if err != nil {
			return balances.Balance{}, balances.Balance{}, fmt.Errorf("lock account %s: %w", id, err)
		}

		locked[id] = bal
	}

	return locked[a], locked[b], nil
}

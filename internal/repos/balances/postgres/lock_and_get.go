package balances

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/balances"
)

func (r *balancesRepo) LockAndGet(tx *sql.Tx, accountID string) (balances.Balance, error) {
	b := balances.Balance{AccountID: accountID}

	err := tx.QueryRow(`
		SELECT credit_balance, energy_balance, is_bank
		FROM balances
		WHERE account_id = $1
		FOR UPDATE
	`, accountID).Scan(&b.CreditBalance, &b.EnergyBalance, &b.IsBank)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return balances.Balance{}, balances.ErrAccountNotFound
		}

		return balances.Balance{}, fmt.Errorf("lock/get balance: %w", err)
	}

	return b, nil
}

package balances

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/balances"
)

// ApplyDelta mutates both counters in one statement. The WHERE guard makes
// the update a no-op when either counter would drop below zero, so a failed
// precondition never leaves a partial write behind.
func (r *balancesRepo) ApplyDelta(tx *sql.Tx, accountID string, creditDelta, energyDelta int64) (balances.Balance, error) {
	b := balances.Balance{AccountID: accountID}

	err := tx.QueryRow(`
		UPDATE balances
		SET credit_balance = credit_balance + $2,
		    energy_balance = energy_balance + $3
		WHERE account_id = $1
		  AND credit_balance + $2 >= 0
		  AND energy_balance + $3 >= 0
		RETURNING credit_balance, energy_balance, is_bank
	`, accountID, creditDelta, energyDelta).Scan(&b.CreditBalance, &b.EnergyBalance, &b.IsBank)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Missing row and failed guard are indistinguishable here;
			// callers lock the row first, so the row exists.
			return balances.Balance{}, balances.ErrInsufficientFunds
		}

		return balances.Balance{}, fmt.Errorf("apply delta: %w", err)
	}

	return b, nil
}

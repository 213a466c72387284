package balances

import (
	"database/sql"
	"fmt"
)

func (r *balancesRepo) CreateIfAbsent(tx *sql.Tx, accountID string, credits, tokens int64, isBank bool) error {
	_, err := tx.Exec(`
		INSERT INTO balances (account_id, credit_balance, energy_balance, is_bank)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO NOTHING
	`, accountID, credits, tokens, isBank)
	if err != nil {
		return fmt.Errorf("create balance: %w", err)
	}

	return nil
}

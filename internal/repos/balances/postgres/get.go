package balances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/balances"
)

func (r *balancesRepo) Get(ctx context.Context, accountID string) (balances.Balance, error) {
	b := balances.Balance{AccountID: accountID}

	err := r.db.QueryRowContext(ctx, `
		SELECT credit_balance, energy_balance, is_bank
		FROM balances
		WHERE account_id = $1
	`, accountID).Scan(&b.CreditBalance, &b.EnergyBalance, &b.IsBank)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return balances.Balance{}, balances.ErrAccountNotFound
		}

		return balances.Balance{}, fmt.Errorf("get balance: %w", err)
	}

	return b, nil
}

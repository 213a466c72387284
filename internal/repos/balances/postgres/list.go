package balances

import (
	"context"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/balances"
)

func (r *balancesRepo) List(ctx context.Context) ([]balances.Balance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_id, credit_balance, energy_balance, is_bank
		FROM balances
		ORDER BY account_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var out []balances.Balance

	for rows.Next() {
		var b balances.Balance

		err = rows.Scan(&b.AccountID, &b.CreditBalance, &b.EnergyBalance, &b.IsBank)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}

		out = append(out, b)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate balances: %w", err)
	}

	return out, nil
}

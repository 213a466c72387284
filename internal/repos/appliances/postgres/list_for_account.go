package appliances

import (
	"context"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
)

func (r *appliancesRepo) ListForAccount(ctx context.Context, accountID string) ([]appliances.Appliance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, name, energy_balance
		FROM appliances
		WHERE account_id = $1
		ORDER BY name
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list appliances: %w", err)
	}
	defer rows.Close()

	var out []appliances.Appliance

	for rows.Next() {
		var a appliances.Appliance

		err = rows.Scan(&a.ID, &a.AccountID, &a.Name, &a.EnergyBalance)
		if err != nil {
			return nil, fmt.Errorf("scan appliance: %w", err)
		}

		out = append(out, a)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate appliances: %w", err)
	}

	return out, nil
}

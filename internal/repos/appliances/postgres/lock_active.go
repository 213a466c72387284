package appliances

import (
	"database/sql"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
)

// LockActive locks running appliances in id order so every caller acquires
// the same rows in the same sequence.
func (r *appliancesRepo) LockActive(tx *sql.Tx, accountID string, limit int) ([]appliances.Appliance, error) {
	rows, err := tx.Query(`
		SELECT id, account_id, name, energy_balance
		FROM appliances
		WHERE account_id = $1
		  AND energy_balance > 0
		ORDER BY id
		LIMIT $2
		FOR UPDATE
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("lock active appliances: %w", err)
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

package appliances

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
)

func (r *appliancesRepo) LockAndGet(tx *sql.Tx, applianceID string) (appliances.Appliance, error) {
	a := appliances.Appliance{ID: applianceID}

	err := tx.QueryRow(`
		SELECT account_id, name, energy_balance
		FROM appliances
		WHERE id = $1
		FOR UPDATE
	`, applianceID).Scan(&a.AccountID, &a.Name, &a.EnergyBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appliances.Appliance{}, appliances.ErrApplianceNotFound
		}

		return appliances.Appliance{}, fmt.Errorf("lock/get appliance: %w", err)
	}

	return a, nil
}

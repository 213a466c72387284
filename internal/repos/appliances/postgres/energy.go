package appliances

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
)

func (r *appliancesRepo) AdjustEnergy(tx *sql.Tx, applianceID string, delta int64) (int64, error) {
	var energy int64

	err := tx.QueryRow(`
		UPDATE appliances
		SET energy_balance = energy_balance + $2
		WHERE id = $1
		  AND energy_balance + $2 >= 0
		RETURNING energy_balance
	`, applianceID, delta).Scan(&energy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appliances.ErrEnergyExhausted
		}

		return 0, fmt.Errorf("adjust energy: %w", err)
	}

	return energy, nil
}

func (r *appliancesRepo) SetEnergy(tx *sql.Tx, applianceID string, value int64) error {
	res, err := tx.Exec(`
		UPDATE appliances
		SET energy_balance = $2
		WHERE id = $1
	`, applianceID, value)
	if err != nil {
		return fmt.Errorf("set energy: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return appliances.ErrApplianceNotFound
	}

	return nil
}

package appliances

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wattmarket/wattmarket/internal/repos/appliances"
)

func (r *appliancesRepo) CreateDefaults(tx *sql.Tx, accountID string) error {
	for _, name := range appliances.DefaultNames {
		_, err := tx.Exec(`
			INSERT INTO appliances (id, account_id, name, energy_balance)
			VALUES ($1, $2, $3, 0)
			ON CONFLICT (account_id, name) DO NOTHING
		`, uuid.NewString(), accountID, name)
		if err != nil {
			return fmt.Errorf("create appliance %q: %w", name, err)
		}
	}

	return nil
}

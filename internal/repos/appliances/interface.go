package appliances

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrApplianceNotFound = errors.New("appliance not found")
	ErrEnergyExhausted   = errors.New("appliance energy exhausted")
)

// DefaultNames is the appliance set materialized for every account on first
// touch.
var DefaultNames = []string{"Light", "Fan", "TV"}

// Appliance is a per-account meter. EnergyBalance doubles as the on/off
// state: >0 means on.
type Appliance struct {
	ID            string
	AccountID     string
	Name          string
	EnergyBalance int64
}

// On reports whether the appliance is currently running.
func (a Appliance) On() bool { return a.EnergyBalance > 0 }

type Appliances interface {
	ListForAccount(ctx context.Context, accountID string) ([]Appliance, error)

	// CreateDefaults inserts any missing members of DefaultNames for the
	// account, all starting at zero energy. Existing rows are untouched.
	CreateDefaults(tx *sql.Tx, accountID string) error

	LockAndGet(tx *sql.Tx, applianceID string) (Appliance, error)

	// LockActive locks up to limit appliances of the account that are
	// currently on, in stable id order.
	LockActive(tx *sql.Tx, accountID string, limit int) ([]Appliance, error)

	// AdjustEnergy shifts the meter by delta, guarded against going
	// negative (ErrEnergyExhausted). Returns the new value.
	AdjustEnergy(tx *sql.Tx, applianceID string, delta int64) (int64, error)

	// SetEnergy overwrites the meter; used by the off-transition.
	SetEnergy(tx *sql.Tx, applianceID string, value int64) error
}

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/appliances"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
	"github.com/wattmarket/wattmarket/internal/repos/ledgerlog"
)

// ListAppliances returns the account's meters, materializing the default set
// on first touch.
func (l *Ledger) ListAppliances(ctx context.Context, userID string) (out []appliances.Appliance, err error) {
	defer func() { metrics.ObserveOp("list_appliances", err) }()

	if userID == "" {
		return nil, fmt.Errorf("%w: empty account id", ErrInvalidInput)
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		return l.ensureAccount(tx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("initialize account: %w", err)
	}

	out, err = l.appliances.ListForAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appliances: %w", err)
	}

	return out, nil
}

// ToggleAppliance flips one meter. Off to on costs EnergyPerActivation from
// the user's energy balance and is logged as a transfer to the appliance.
// On to off just zeroes the meter: the token already paid funded the on
// period, so nothing is refunded and no balance moves — no log entry.
func (l *Ledger) ToggleAppliance(ctx context.Context, userID, applianceID string) (app appliances.Appliance, err error) {
	defer func() { metrics.ObserveOp("toggle_appliance", err) }()

	if userID == "" || applianceID == "" {
		return appliances.Appliance{}, fmt.Errorf("%w: account and appliance ids required", ErrInvalidInput)
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		err := l.ensureAccount(tx, userID)
		if err != nil {
			return err
		}

		// Balance before appliance, matching DeductConsumption's order.
		_, err = l.balances.LockAndGet(tx, userID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		app, err = l.appliances.LockAndGet(tx, applianceID)
		if err != nil {
			return fmt.Errorf("lock appliance: %w", err)
		}

		// Another user's appliance is as good as missing.
		if app.AccountID != userID {
			return appliances.ErrApplianceNotFound
		}

		if app.On() {
			err = l.appliances.SetEnergy(tx, applianceID, 0)
			if err != nil {
				return fmt.Errorf("switch off: %w", err)
			}

			app.EnergyBalance = 0

			return nil
		}

		_, err = l.balances.ApplyDelta(tx, userID, 0, -EnergyPerActivation)
		if err != nil {
			return fmt.Errorf("charge activation: %w", err)
		}

		app.EnergyBalance, err = l.appliances.AdjustEnergy(tx, applianceID, EnergyPerActivation)
		if err != nil {
			return fmt.Errorf("switch on: %w", err)
		}

		err = l.log.Append(tx, ledgerlog.Record{
			TransactionID: uuid.NewString(),
			SenderID:      userID,
			ReceiverID:    applianceID,
			Type:          RecordApplianceOn,
			Amount:        EnergyPerActivation,
		})
		if err != nil {
			return fmt.Errorf("log activation: %w", err)
		}

		return nil
	})
	if err != nil {
		return appliances.Appliance{}, err
	}

	return app, nil
}

// DeductConsumption is the metering tick: it burns count tokens from the
// user and one unit from each of count running appliances, logging a Deduct
// record per appliance. Appliances drained to zero switch off by
// exhaustion. If fewer than count appliances are running, nothing is
// deducted at all.
func (l *Ledger) DeductConsumption(ctx context.Context, userID string, count int64) (bal balances.Balance, err error) {
	defer func() { metrics.ObserveOp("deduct_consumption", err) }()

	if userID == "" {
		return balances.Balance{}, fmt.Errorf("%w: empty account id", ErrInvalidInput)
	}
	if count <= 0 {
		return balances.Balance{}, fmt.Errorf("%w: count must be positive", ErrInvalidAmount)
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		err := l.ensureAccount(tx, userID)
		if err != nil {
			return err
		}

		_, err = l.balances.LockAndGet(tx, userID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		active, err := l.appliances.LockActive(tx, userID, int(count))
		if err != nil {
			return fmt.Errorf("lock active appliances: %w", err)
		}

		if int64(len(active)) < count {
			return fmt.Errorf("%w: want %d, have %d on", ErrApplianceCountMismatch, count, len(active))
		}

		bal, err = l.balances.ApplyDelta(tx, userID, 0, -count)
		if err != nil {
			return fmt.Errorf("burn tokens: %w", err)
		}

		for _, app := range active {
			_, err = l.appliances.AdjustEnergy(tx, app.ID, -1)
			if err != nil {
				return fmt.Errorf("meter appliance %s: %w", app.ID, err)
			}

			err = l.log.Append(tx, ledgerlog.Record{
				TransactionID: uuid.NewString(),
				SenderID:      userID,
				ReceiverID:    app.ID,
				Type:          RecordDeduct,
				Amount:        1,
			})
			if err != nil {
				return fmt.Errorf("log deduction for %s: %w", app.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return balances.Balance{}, err
	}

	return bal, nil
}

package balances

import (
	"context"
	"errors"
	"testing"

	"github.com/wattmarket/wattmarket/internal/infra/pgtestutil"
	"github.com/wattmarket/wattmarket/internal/repos/balances"
)

func TestBalances_Get(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	ctx := context.Background()

	seedAccount(t, db, "acct_known", 1000, 25)

	got, err := repo.Get(ctx, "acct_known")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CreditBalance != 1000 || got.EnergyBalance != 25 {
		t.Fatalf("balance: want {1000 25}, got {%d %d}", got.CreditBalance, got.EnergyBalance)
	}

	_, err = repo.Get(ctx, "acct_missing")
	if !errors.Is(err, balances.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}
}

func TestBalances_CreateIfAbsent_Idempotent(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	ctx := context.Background()

	create := func(credits, tokens int64) {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		defer func() { _ = tx.Rollback() }()

		err = repo.CreateIfAbsent(tx, "acct_new", credits, tokens, false)
		if err != nil {
			t.Fatalf("create if absent: %v", err)
		}

		err = tx.Commit()
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	create(200, 0)
	// Second call with different values must not clobber the first.
	create(999, 999)

	got, err := repo.Get(ctx, "acct_new")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CreditBalance != 200 || got.EnergyBalance != 0 {
		t.Fatalf("balance after re-create: want {200 0}, got {%d %d}", got.CreditBalance, got.EnergyBalance)
	}
}

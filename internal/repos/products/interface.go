package products

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product out of stock")
)

type Product struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Price       int64
	InStock     int64
}

type Products interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, productID string) (Product, error)

	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, productID string) error

	// LockAndGet takes a FOR UPDATE lock for the purchase path so stock is
	// re-validated against committed state.
	LockAndGet(tx *sql.Tx, productID string) (Product, error)

	// DecrementStock takes one unit off the shelf, guarded so stock never
	// goes negative (ErrOutOfStock on a failed guard).
	DecrementStock(tx *sql.Tx, productID string) error
}

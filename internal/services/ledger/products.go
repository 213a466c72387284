package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wattmarket/wattmarket/internal/infra/metrics"
	"github.com/wattmarket/wattmarket/internal/repos/products"
)

// ListProducts is the public catalog read.
func (l *Ledger) ListProducts(ctx context.Context) (out []products.Product, err error) {
	defer func() { metrics.ObserveOp("list_products", err) }()

	out, err = l.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return out, nil
}

// CreateProduct adds a catalog entry. Admin only.
func (l *Ledger) CreateProduct(ctx context.Context, callerID string, p products.Product) (products.Product, error) {
	var err error
	defer func() { metrics.ObserveOp("create_product", err) }()

	err = l.requireAdmin(callerID)
	if err != nil {
		return products.Product{}, err
	}

	err = validateProduct(p)
	if err != nil {
		return products.Product{}, err
	}

	p.ID = uuid.NewString()

	err = l.products.Create(ctx, p)
	if err != nil {
		return products.Product{}, fmt.Errorf("create product: %w", err)
	}

	return p, nil
}

// UpdateProduct overwrites a catalog entry. Admin only; stock edits are the
// only sanctioned way to restock.
func (l *Ledger) UpdateProduct(ctx context.Context, callerID string, p products.Product) (products.Product, error) {
	var err error
	defer func() { metrics.ObserveOp("update_product", err) }()

	err = l.requireAdmin(callerID)
	if err != nil {
		return products.Product{}, err
	}

	if p.ID == "" {
		return products.Product{}, fmt.Errorf("%w: product id required", ErrInvalidInput)
	}

	err = validateProduct(p)
	if err != nil {
		return products.Product{}, err
	}

	err = l.products.Update(ctx, p)
	if err != nil {
		return products.Product{}, fmt.Errorf("update product: %w", err)
	}

	return p, nil
}

// DeleteProduct removes a catalog entry. Admin only. Log records keep their
// product id as a weak reference; listings just lose the joined name.
func (l *Ledger) DeleteProduct(ctx context.Context, callerID, productID string) (err error) {
	defer func() { metrics.ObserveOp("delete_product", err) }()

	err = l.requireAdmin(callerID)
	if err != nil {
		return err
	}

	if productID == "" {
		return fmt.Errorf("%w: product id required", ErrInvalidInput)
	}

	err = l.products.Delete(ctx, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return nil
}

func validateProduct(p products.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidAmount)
	}
	if p.InStock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidAmount)
	}

	return nil
}

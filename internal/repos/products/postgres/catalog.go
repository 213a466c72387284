package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/products"
)

func (r *productsRepo) List(ctx context.Context) ([]products.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, image_url, price, in_stock
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []products.Product

	for rows.Next() {
		var p products.Product

		err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.InStock)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		out = append(out, p)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return out, nil
}

func (r *productsRepo) Get(ctx context.Context, productID string) (products.Product, error) {
	p := products.Product{ID: productID}

	err := r.db.QueryRowContext(ctx, `
		SELECT name, description, image_url, price, in_stock
		FROM products
		WHERE id = $1
	`, productID).Scan(&p.Name, &p.Description, &p.ImageURL, &p.Price, &p.InStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrProductNotFound
		}

		return products.Product{}, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

func (r *productsRepo) Create(ctx context.Context, p products.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, image_url, price, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Name, p.Description, p.ImageURL, p.Price, p.InStock)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *productsRepo) Update(ctx context.Context, p products.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, image_url = $4, price = $5, in_stock = $6
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.ImageURL, p.Price, p.InStock)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return products.ErrProductNotFound
	}

	return nil
}

func (r *productsRepo) Delete(ctx context.Context, productID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE id = $1
	`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return products.ErrProductNotFound
	}

	return nil
}

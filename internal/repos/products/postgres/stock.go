package products

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wattmarket/wattmarket/internal/repos/products"
)

func (r *productsRepo) LockAndGet(tx *sql.Tx, productID string) (products.Product, error) {
	p := products.Product{ID: productID}

	err := tx.QueryRow(`
		SELECT name, description, image_url, price, in_stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, productID).Scan(&p.Name, &p.Description, &p.ImageURL, &p.Price, &p.InStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrProductNotFound
		}

		return products.Product{}, fmt.Errorf("lock/get product: %w", err)
	}

	return p, nil
}

func (r *productsRepo) DecrementStock(tx *sql.Tx, productID string) error {
	res, err := tx.Exec(`
		UPDATE products
		SET in_stock = in_stock - 1
		WHERE id = $1
		  AND in_stock >= 1
	`, productID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return products.ErrOutOfStock
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/Proton-105/warung-bot/internal/domain"
)

const productColumns = `id, name, description, price, image_url, created_at`

// CreateProduct inserts a product.
func (s *Store) CreateProduct(ctx context.Context, product *domain.Product) error {
	const query = `
		INSERT INTO products (name, description, price, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowxContext(ctx, query, product.Name, product.Description, product.Price, product.ImageURL).
		Scan(&product.ID, &product.CreatedAt); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// FindProductByID loads one product.
func (s *Store) FindProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.GetContext(ctx, &product, `SELECT `+productColumns+` FROM products WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}

	return &product, nil
}

// ListProducts returns the catalog ordered by id.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := s.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// UpdateProduct overwrites a product's fields.
func (s *Store) UpdateProduct(ctx context.Context, product *domain.Product) error {
	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, product.ID, product.Name, product.Description, product.Price, product.ImageURL)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return affected(res)
}

// DeleteProduct removes a product. Order lines keep their snapshot.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return affected(res)
}

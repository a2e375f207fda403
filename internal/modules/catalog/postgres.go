package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, sku, price, category, image_url, is_available)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Description, p.SKU, p.Price, p.Category, p.ImageURL, p.IsAvailable)
	if err != nil {
		return apperr.Dependency(err, "insert product")
	}
	return nil
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p := &Product{}
	var stock sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, COALESCE(p.description,''), COALESCE(p.sku,''), p.price,
		       p.category, COALESCE(p.image_url,''), p.is_available, p.created_at,
		       i.stock_quantity
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price,
			&p.Category, &p.ImageURL, &p.IsAvailable, &p.CreatedAt, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("product %s not found", id)
	}
	if err != nil {
		return nil, apperr.Dependency(err, "fetch product")
	}
	if stock.Valid {
		p.Stock = int(stock.Int64)
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	query := `
		SELECT p.id, p.name, COALESCE(p.description,''), COALESCE(p.sku,''), p.price,
		       p.category, COALESCE(p.image_url,''), p.is_available, p.created_at,
		       i.stock_quantity
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.is_available = TRUE`
	args := []interface{}{}
	if category != "" && category != "All" {
		query += ` AND p.category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Dependency(err, "list products")
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		var stock sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price,
			&p.Category, &p.ImageURL, &p.IsAvailable, &p.CreatedAt, &stock); err != nil {
			return nil, apperr.Dependency(err, "scan product")
		}
		if stock.Valid {
			p.Stock = int(stock.Int64)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, sku=$3, price=$4, category=$5, image_url=$6, is_available=$7
		WHERE id=$8`,
		p.Name, p.Description, p.SKU, p.Price, p.Category, p.ImageURL, p.IsAvailable, p.ID)
	if err != nil {
		return apperr.Dependency(err, "update product")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFoundf("product %s not found", p.ID)
	}
	return nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return apperr.Dependency(err, "delete product")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFoundf("product %s not found", id)
	}
	return nil
}

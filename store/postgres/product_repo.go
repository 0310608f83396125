package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/catalog"
)

var _ catalog.Repo = (*ProductRepo)(nil)

type ProductRepo struct {
	db DB
}

func NewProductRepo(db DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, product *catalog.Product) error {
	if product.ID == "" {
		product.ID = ulid.Make().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price_cents, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		product.ID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "[ProductRepo.Create] insert product")
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (*catalog.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, price_cents, stock, created_at
		FROM products
		WHERE id = $1
	`, id)

	var product catalog.Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.PriceCents, &product.Stock, &product.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[ProductRepo.Get] scan product")
	}
	return &product, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price_cents, stock, created_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "[ProductRepo.List] query products")
	}
	defer rows.Close()

	list := make([]*catalog.Product, 0)
	for rows.Next() {
		var product catalog.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.PriceCents, &product.Stock, &product.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[ProductRepo.List] scan product")
		}
		list = append(list, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[ProductRepo.List] rows")
	}
	return list, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *catalog.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, stock = $5
		WHERE id = $1
	`,
		product.ID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
	)
	if err != nil {
		return errors.Wrap(err, "[ProductRepo.Update] update product")
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "[ProductRepo.Delete] delete product")
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

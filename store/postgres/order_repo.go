package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/orders"
)

var _ orders.Repo = (*OrderRepo)(nil)

// OrderRepo stores order lines as a jsonb document; items are only ever
// read back whole, never queried individually.
type OrderRepo struct {
	db DB
}

func NewOrderRepo(db DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, order *orders.Order) error {
	if order.ID == "" {
		order.ID = ulid.Make().String()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return errors.Wrap(err, "[OrderRepo.Create] marshal items")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (id, account_id, items, total_cents, status, charge_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		order.ID,
		order.AccountID,
		itemsJSON,
		order.TotalCents,
		order.Status,
		order.ChargeID,
		order.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "[OrderRepo.Create] insert order")
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (*orders.Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, account_id, items, total_cents, status, charge_id, created_at
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, orders.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[OrderRepo.Get] scan order")
	}
	return order, nil
}

func (r *OrderRepo) ListByAccount(ctx context.Context, accountID string) ([]*orders.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, items, total_cents, status, charge_id, created_at
		FROM orders
		WHERE account_id = $1
		ORDER BY id
	`, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "[OrderRepo.ListByAccount] query orders")
	}
	defer rows.Close()

	list := make([]*orders.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "[OrderRepo.ListByAccount] scan order")
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[OrderRepo.ListByAccount] rows")
	}
	return list, nil
}

func scanOrder(row pgx.Row) (*orders.Order, error) {
	var order orders.Order
	var itemsJSON []byte
	if err := row.Scan(&order.ID, &order.AccountID, &itemsJSON, &order.TotalCents, &order.Status, &order.ChargeID, &order.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, errors.Wrap(err, "unmarshal items")
	}
	return &order, nil
}

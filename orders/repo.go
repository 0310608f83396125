package orders

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("order not found")

type Repo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Order, error)
}

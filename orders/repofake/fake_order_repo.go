package fakeorderrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/taskcart/taskcart/orders"
)

var _ orders.Repo = (*FakeOrderRepo)(nil)

type FakeOrderRepo struct {
	byID map[string]*orders.Order
	lock sync.RWMutex
}

func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{
		byID: make(map[string]*orders.Order),
	}
}

func (or *FakeOrderRepo) Create(_ context.Context, order *orders.Order) error {
	or.lock.Lock()
	defer or.lock.Unlock()

	if order.ID == "" {
		order.ID = ulid.Make().String()
	}
	stored := *order
	stored.Items = append([]orders.Item(nil), order.Items...)
	or.byID[stored.ID] = &stored
	return nil
}

func (or *FakeOrderRepo) Get(_ context.Context, id string) (*orders.Order, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	order, ok := or.byID[id]
	if !ok {
		return nil, orders.ErrNotFound
	}
	copied := *order
	copied.Items = append([]orders.Item(nil), order.Items...)
	return &copied, nil
}

func (or *FakeOrderRepo) ListByAccount(_ context.Context, accountID string) ([]*orders.Order, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	list := make([]*orders.Order, 0)
	for _, order := range or.byID {
		if order.AccountID != accountID {
			continue
		}
		copied := *order
		copied.Items = append([]orders.Item(nil), order.Items...)
		list = append(list, &copied)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

package fakeproductrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/taskcart/taskcart/catalog"
)

var _ catalog.Repo = (*FakeProductRepo)(nil)

type FakeProductRepo struct {
	byID map[string]*catalog.Product
	lock sync.RWMutex
}

func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{
		byID: make(map[string]*catalog.Product),
	}
}

func (pr *FakeProductRepo) Create(_ context.Context, product *catalog.Product) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if product.ID == "" {
		product.ID = ulid.Make().String()
	}
	stored := *product
	pr.byID[stored.ID] = &stored
	return nil
}

func (pr *FakeProductRepo) Get(_ context.Context, id string) (*catalog.Product, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	product, ok := pr.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (pr *FakeProductRepo) List(_ context.Context) ([]*catalog.Product, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*catalog.Product, 0, len(pr.byID))
	for _, product := range pr.byID {
		copied := *product
		list = append(list, &copied)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (pr *FakeProductRepo) Update(_ context.Context, product *catalog.Product) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.byID[product.ID]; !ok {
		return catalog.ErrNotFound
	}
	stored := *product
	pr.byID[stored.ID] = &stored
	return nil
}

func (pr *FakeProductRepo) Delete(_ context.Context, id string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.byID[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(pr.byID, id)
	return nil
}

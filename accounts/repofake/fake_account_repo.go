package fakeaccountrepo

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/taskcart/taskcart/accounts"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	byID      map[string]*accounts.Account
	handleIDs map[string]string // handle to account id
	contactID map[string]string // contact to account id
	lock      sync.RWMutex
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		byID:      make(map[string]*accounts.Account),
		handleIDs: make(map[string]string),
		contactID: make(map[string]string),
	}
}

func (ar *FakeAccountRepo) Create(_ context.Context, account *accounts.Account) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if _, ok := ar.handleIDs[account.Handle]; ok {
		return accounts.ErrDuplicate
	}
	if _, ok := ar.contactID[account.Contact]; ok {
		return accounts.ErrDuplicate
	}

	if account.ID == "" {
		account.ID = ulid.Make().String()
	}
	stored := *account
	ar.byID[stored.ID] = &stored
	ar.handleIDs[stored.Handle] = stored.ID
	ar.contactID[stored.Contact] = stored.ID
	return nil
}

func (ar *FakeAccountRepo) GetByID(_ context.Context, id string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	account, ok := ar.byID[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (ar *FakeAccountRepo) GetByHandle(_ context.Context, handle string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.handleIDs[handle]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	copied := *ar.byID[id]
	return &copied, nil
}

func (ar *FakeAccountRepo) GetByContact(_ context.Context, contact string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.contactID[contact]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	copied := *ar.byID[id]
	return &copied, nil
}

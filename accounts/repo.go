package accounts

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate is returned by Create when the handle or contact is
	// already taken. Implementations must enforce this at the storage layer
	// so concurrent registrations have at most one winner.
	ErrDuplicate = errors.New("account already exists")
)

type Repo interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByHandle(ctx context.Context, handle string) (*Account, error)
	GetByContact(ctx context.Context, contact string) (*Account, error)
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/accounts"
)

var _ accounts.Repo = (*AccountRepo)(nil)

// AccountRepo implements accounts.Repo on postgres. Handle and contact
// uniqueness live in the schema, so the duplicate race is decided by the
// database, not by application checks.
type AccountRepo struct {
	db DB
}

func NewAccountRepo(db DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Create(ctx context.Context, account *accounts.Account) error {
	if account.ID == "" {
		account.ID = ulid.Make().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, handle, contact, secret_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		account.ID,
		account.Handle,
		account.Contact,
		account.SecretHash,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return accounts.ErrDuplicate
		}
		return errors.Wrap(err, "[AccountRepo.Create] insert account")
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *AccountRepo) GetByHandle(ctx context.Context, handle string) (*accounts.Account, error) {
	return r.getBy(ctx, `WHERE handle = $1`, handle)
}

func (r *AccountRepo) GetByContact(ctx context.Context, contact string) (*accounts.Account, error) {
	return r.getBy(ctx, `WHERE contact = $1`, contact)
}

func (r *AccountRepo) getBy(ctx context.Context, where string, arg any) (*accounts.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, handle, contact, secret_hash, created_at
		FROM accounts
	`+where, arg)

	var account accounts.Account
	err := row.Scan(&account.ID, &account.Handle, &account.Contact, &account.SecretHash, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accounts.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[AccountRepo] scan account")
	}
	return &account, nil
}

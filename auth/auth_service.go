package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/accounts"
	"github.com/taskcart/taskcart/token"
)

// dummySecretHash is a fixed bcrypt hash compared against when login hits an
// unknown contact, so that path costs as much as a real mismatch and the two
// failures stay indistinguishable to a caller timing responses.
const dummySecretHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// defaultHashConcurrency bounds how many bcrypt computations may run at
// once. Hashing is CPU-bound; the bound keeps a burst of registrations from
// starving every other request goroutine.
const defaultHashConcurrency = 4

// Session is the result of a successful login: a bearer token plus the
// public view of the account it proves.
type Session struct {
	Token   string          `json:"token"`
	Account accounts.Public `json:"account"`
}

// Service is the credential and session manager: it turns registrations into
// stored accounts with hashed secrets, logins into verified identities with
// signed tokens, and presented tokens back into trusted identities.
type Service struct {
	repo      accounts.Repo
	issuer    *token.Issuer
	inspector *token.Inspector
	cost      int              // bcrypt work factor
	nowTime   func() time.Time // nowTime function (injectable for testing)
	hashSlots chan struct{}
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithWorkFactor sets the bcrypt cost used when hashing new secrets.
func WithWorkFactor(cost int) ServiceOption {
	return func(s *Service) {
		s.cost = cost
	}
}

// WithHashConcurrency sets how many secret hashes may be computed at once.
func WithHashConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.hashSlots = make(chan struct{}, n)
		}
	}
}

// NewService initializes a new Service with required dependencies. tokenTTL
// of zero issues tokens without expiry. Optional configuration can be
// provided via options.
func NewService(repo accounts.Repo, signer token.Signer, tokenTTL time.Duration, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[NewService] accounts repo is required")
	}
	if signer == nil {
		return nil, errors.New("[NewService] token signer is required")
	}

	service := &Service{
		repo:      repo,
		issuer:    token.NewIssuer(signer, tokenTTL),
		inspector: token.NewInspector(signer),
		cost:      accounts.DefaultWorkFactor,
		nowTime:   time.Now,
		hashSlots: make(chan struct{}, defaultHashConcurrency),
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Register validates the candidate credentials, hashes the secret and stores
// a new account. Exactly one account record is created on success; neither
// the plaintext nor the hash is echoed back.
func (s *Service) Register(ctx context.Context, handle, contact, secret string) (*accounts.Public, error) {
	handle = strings.TrimSpace(handle)
	contact = strings.TrimSpace(contact)
	if handle == "" || secret == "" || !accounts.ValidContact(contact) {
		return nil, ErrInvalidInput
	}

	// Pre-checks give the common duplicate case a clean answer before paying
	// for a hash. The racing case is caught again by Create below.
	if _, err := s.repo.GetByHandle(ctx, handle); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, accounts.ErrNotFound) {
		return nil, errors.Wrap(err, "[Service.Register] GetByHandle")
	}
	if _, err := s.repo.GetByContact(ctx, contact); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, accounts.ErrNotFound) {
		return nil, errors.Wrap(err, "[Service.Register] GetByContact")
	}

	hash, err := s.hashSecret(ctx, secret)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] hash secret")
	}

	account := &accounts.Account{
		Handle:     handle,
		Contact:    contact,
		SecretHash: hash,
		CreatedAt:  s.nowTime(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, accounts.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, errors.Wrap(err, "[Service.Register] Create")
	}

	public := account.Public()
	return &public, nil
}

// Login verifies the contact/secret pair and issues a session token. Unknown
// contact and wrong secret return the same ErrInvalidCredentials; the
// unknown-contact path burns a bcrypt comparison so latency is comparable.
func (s *Service) Login(ctx context.Context, contact, secret string) (*Session, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" || secret == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetByContact(ctx, contact)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			accounts.CheckSecretHash(secret, dummySecretHash)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[Service.Login] GetByContact")
	}

	if !accounts.CheckSecretHash(secret, account.SecretHash) {
		return nil, ErrInvalidCredentials
	}

	signedToken, err := s.issuer.Issue(account.ID, account.Handle)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] issue token")
	}

	return &Session{
		Token:   signedToken,
		Account: account.Public(),
	}, nil
}

// Verify classifies a presented token. On success it returns the identity
// bound into the signed payload without touching storage; callers that need
// live account state fetch it explicitly (see Account).
func (s *Service) Verify(rawToken string) (*token.Identity, error) {
	identity, err := s.inspector.Inspect(rawToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return identity, nil
}

// Account fetches the live account record for a verified identity. Returns
// ErrInvalidToken when the account no longer exists.
func (s *Service) Account(ctx context.Context, accountID string) (*accounts.Public, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, errors.Wrap(err, "[Service.Account] GetByID")
	}
	public := account.Public()
	return &public, nil
}

// hashSecret runs the bcrypt computation behind a bounded semaphore. The
// caller's context aborts the wait, not the hash itself.
func (s *Service) hashSecret(ctx context.Context, secret string) (string, error) {
	select {
	case s.hashSlots <- struct{}{}:
		defer func() { <-s.hashSlots }()
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return accounts.HashSecret(secret, s.cost)
}

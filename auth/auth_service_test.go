package auth_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskcart/taskcart/accounts"
	fakeaccountrepo "github.com/taskcart/taskcart/accounts/repofake"
	"github.com/taskcart/taskcart/auth"
	"github.com/taskcart/taskcart/token"
)

const (
	secretStr       = "test-signing-secret"
	testHandle      = "alice"
	testContact     = "alice@example.com"
	testSecret      = "S3cret!"
	otherHandle     = "bob"
	otherContact    = "bob@example.com"
	wrongSecret     = "wrong"
	missingContact  = "nobody@example.com"
	malformedString = "not-a-token"
)

type testFixture struct {
	repo    accounts.Repo
	service *auth.Service
}

func setupTestFixture(t *testing.T, options ...auth.ServiceOption) *testFixture {
	t.Helper()

	repo := fakeaccountrepo.NewFakeAccountRepo()
	signer := token.NewHMACSigner(secretStr)

	// MinCost keeps the bcrypt work cheap in tests
	options = append([]auth.ServiceOption{auth.WithWorkFactor(bcrypt.MinCost)}, options...)
	service, err := auth.NewService(repo, signer, 0, options...)
	require.NoError(t, err)

	return &testFixture{
		repo:    repo,
		service: service,
	}
}

func TestNewService(t *testing.T) {
	t.Run("requires repo", func(t *testing.T) {
		_, err := auth.NewService(nil, token.NewHMACSigner(secretStr), 0)
		require.Error(t, err)
	})

	t.Run("requires signer", func(t *testing.T) {
		_, err := auth.NewService(fakeaccountrepo.NewFakeAccountRepo(), nil, 0)
		require.Error(t, err)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed secret, never the plaintext", func(t *testing.T) {
		f := setupTestFixture(t)

		public, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)
		require.NotEmpty(t, public.ID)
		require.Equal(t, testHandle, public.Handle)
		require.Equal(t, testContact, public.Contact)

		stored, err := f.repo.GetByContact(ctx, testContact)
		require.NoError(t, err)
		require.NotEmpty(t, stored.SecretHash)
		require.NotEqual(t, testSecret, stored.SecretHash)
		require.True(t, accounts.CheckSecretHash(testSecret, stored.SecretHash))
	})

	t.Run("distinct contacts each succeed", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)
		_, err = f.service.Register(ctx, otherHandle, otherContact, testSecret)
		require.NoError(t, err)
	})

	t.Run("duplicate contact fails and leaves one account", func(t *testing.T) {
		f := setupTestFixture(t)

		first, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)

		_, err = f.service.Register(ctx, otherHandle, testContact, testSecret)
		require.ErrorIs(t, err, auth.ErrDuplicateAccount)

		stored, err := f.repo.GetByContact(ctx, testContact)
		require.NoError(t, err)
		require.Equal(t, first.ID, stored.ID)
		require.Equal(t, testHandle, stored.Handle)
	})

	t.Run("duplicate handle fails", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)

		_, err = f.service.Register(ctx, testHandle, otherContact, testSecret)
		require.ErrorIs(t, err, auth.ErrDuplicateAccount)
	})

	t.Run("empty or malformed fields fail with ErrInvalidInput", func(t *testing.T) {
		f := setupTestFixture(t)

		cases := []struct {
			name    string
			handle  string
			contact string
			secret  string
		}{
			{"empty handle", "", testContact, testSecret},
			{"empty contact", testHandle, "", testSecret},
			{"empty secret", testHandle, testContact, ""},
			{"contact without @", testHandle, "aliceexample.com", testSecret},
			{"whitespace handle", "   ", testContact, testSecret},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.service.Register(ctx, tc.handle, tc.contact, tc.secret)
				require.ErrorIs(t, err, auth.ErrInvalidInput)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials yield a verifiable token", func(t *testing.T) {
		f := setupTestFixture(t)
		registered, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)

		session, err := f.service.Login(ctx, testContact, testSecret)
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)
		require.Equal(t, registered.ID, session.Account.ID)
		require.Equal(t, testHandle, session.Account.Handle)

		identity, err := f.service.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, registered.ID, identity.AccountID)
		require.Equal(t, testHandle, identity.Handle)
	})

	t.Run("wrong secret and unknown contact fail identically", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)

		_, errWrongSecret := f.service.Login(ctx, testContact, wrongSecret)
		require.ErrorIs(t, errWrongSecret, auth.ErrInvalidCredentials)

		_, errUnknown := f.service.Login(ctx, missingContact, testSecret)
		require.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)

		require.Equal(t, errWrongSecret, errUnknown)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed token", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Verify(malformedString)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("tampered identifier invalidates the signature", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)
		other, err := f.service.Register(ctx, otherHandle, otherContact, testSecret)
		require.NoError(t, err)

		session, err := f.service.Login(ctx, testContact, testSecret)
		require.NoError(t, err)

		tampered := retargetToken(t, session.Token, other.ID)
		_, err = f.service.Verify(tampered)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)

		foreignIssuer := token.NewIssuer(token.NewHMACSigner("some-other-secret"), 0)
		forged, err := foreignIssuer.Issue("forged-id", testHandle)
		require.NoError(t, err)

		_, err = f.service.Verify(forged)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		repo := fakeaccountrepo.NewFakeAccountRepo()
		signer := token.NewHMACSigner(secretStr)
		service, err := auth.NewService(repo, signer, time.Minute, auth.WithWorkFactor(bcrypt.MinCost))
		require.NoError(t, err)

		_, err = service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)
		session, err := service.Login(ctx, testContact, testSecret)
		require.NoError(t, err)

		originalNow := token.NowTimeFunc
		token.NowTimeFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { token.NowTimeFunc = originalNow }()

		_, err = service.Verify(session.Token)
		require.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("no expiry configured means no age limit", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)
		session, err := f.service.Login(ctx, testContact, testSecret)
		require.NoError(t, err)

		originalNow := token.NowTimeFunc
		token.NowTimeFunc = func() time.Time { return time.Now().Add(365 * 24 * time.Hour) }
		defer func() { token.NowTimeFunc = originalNow }()

		_, err = f.service.Verify(session.Token)
		require.NoError(t, err)
	})
}

func TestAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a live account", func(t *testing.T) {
		f := setupTestFixture(t)
		registered, err := f.service.Register(ctx, testHandle, testContact, testSecret)
		require.NoError(t, err)

		public, err := f.service.Account(ctx, registered.ID)
		require.NoError(t, err)
		require.Equal(t, testHandle, public.Handle)
	})

	t.Run("vanished account reads as invalid token", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Account(ctx, "01JGONEACCOUNT0000000000000")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

// retargetToken rewrites the sub claim of a signed JWT without re-signing,
// producing a payload/signature mismatch.
func retargetToken(t *testing.T, signedToken, newSub string) string {
	t.Helper()

	parts := strings.Split(signedToken, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	claims["sub"] = newSub

	altered, err := json.Marshal(claims)
	require.NoError(t, err)

	parts[1] = base64.RawURLEncoding.EncodeToString(altered)
	return strings.Join(parts, ".")
}

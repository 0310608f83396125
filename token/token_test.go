package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskcart/taskcart/token"
)

func TestIssueAndInspect(t *testing.T) {
	signer := token.NewHMACSigner("unit-test-secret")

	t.Run("round trip without expiry", func(t *testing.T) {
		issuer := token.NewIssuer(signer, 0)
		signed, err := issuer.Issue("account-1", "alice")
		require.NoError(t, err)

		identity, err := token.NewInspector(signer).Inspect(signed)
		require.NoError(t, err)
		require.Equal(t, "account-1", identity.AccountID)
		require.Equal(t, "alice", identity.Handle)
		require.NotEmpty(t, identity.TokenID)
		require.True(t, identity.ExpiresAt.IsZero())
		require.False(t, identity.IssuedAt.IsZero())
	})

	t.Run("expiry claim follows the configured ttl", func(t *testing.T) {
		issuer := token.NewIssuer(signer, time.Hour)
		signed, err := issuer.Issue("account-1", "alice")
		require.NoError(t, err)

		identity, err := token.NewInspector(signer).Inspect(signed)
		require.NoError(t, err)
		require.False(t, identity.ExpiresAt.IsZero())
		require.WithinDuration(t, time.Now().Add(time.Hour), identity.ExpiresAt, 5*time.Second)
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		issuer := token.NewIssuer(signer, 0)
		signed, err := issuer.Issue("account-1", "alice")
		require.NoError(t, err)

		_, err = token.NewInspector(token.NewHMACSigner("another-secret")).Inspect(signed)
		require.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := token.NewInspector(signer).Inspect("definitely.not.a-jwt")
		require.ErrorIs(t, err, token.ErrInvalid)
	})
}

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Issuer creates signed session tokens binding an account identity.
type Issuer struct {
	signer Signer
	ttl    time.Duration // zero means tokens carry no expiry
}

// NewIssuer creates an Issuer. A ttl of zero disables the exp claim; tokens
// then live until the client discards them.
func NewIssuer(signer Signer, ttl time.Duration) *Issuer {
	return &Issuer{
		signer: signer,
		ttl:    ttl,
	}
}

// Issue signs a token for the given account. The payload binds the account
// ID (sub) and handle; any mutation of either invalidates the signature.
func (i *Issuer) Issue(accountID, handle string) (string, error) {
	now := NowTimeFunc()
	claims := jwt.MapClaims{
		"sub":    accountID,           // The account the token proves
		"handle": handle,              // Public handle, saves a lookup for display
		"iat":    int64(now.Unix()),   // Issued At
		"jti":    uuid.New().String(), // Unique token ID
	}
	if i.ttl > 0 {
		claims["exp"] = int64(now.Add(i.ttl).Unix())
	}

	signedToken, err := i.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Issuer.Issue] sign claims")
	}
	return signedToken, nil
}

package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid covers malformed payloads and signature failures.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned when the token verified but its exp claim is in
	// the past.
	ErrExpired = errors.New("token expired")
)

// Identity is the trusted result of verifying a session token. It is derived
// entirely from the signed payload; no storage round-trip is involved.
type Identity struct {
	AccountID string    // sub claim
	Handle    string    // handle claim
	IssuedAt  time.Time // iat claim
	ExpiresAt time.Time // exp claim; zero when the token carries no expiry
	TokenID   string    // jti claim
}

// Inspector validates session tokens against the process-wide signer.
type Inspector struct {
	signer Signer
}

// NewInspector creates a new Inspector
func NewInspector(signer Signer) *Inspector {
	return &Inspector{
		signer: signer,
	}
}

// Inspect parses and verifies a raw token, returning the identity it binds.
// Verification is pure: signature check plus claim extraction.
func (i *Inspector) Inspect(rawToken string) (*Identity, error) {
	parsed, err := jwtlib.ParseWithClaims(
		rawToken,
		jwtlib.MapClaims{},
		i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !parsed.Valid {
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalid
	}
	handle, _ := claims["handle"].(string)
	jti, _ := claims["jti"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	identity := &Identity{
		AccountID: sub,
		Handle:    handle,
		IssuedAt:  time.Unix(int64(iat), 0),
		TokenID:   jti,
	}
	if exp != 0 {
		identity.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return identity, nil
}

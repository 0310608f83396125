package config

import (
	"strconv"
	"time"
)

// AuthConfig carries the credential-manager inputs: the process-wide signing
// secret, the hashing work factor and the optional token expiry.
type AuthConfig interface {
	GetSigningSecret() string
	GetTokenTTL() time.Duration
	GetWorkFactor() int
	GetHashConcurrency() int
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetSigningSecret returns the HMAC secret used to sign session tokens.
// Empty in DEV falls back to a fixed development-only value; production
// startup refuses to run without one.
func (Auth) GetSigningSecret() string {
	return GetEnv("SIGNING_SECRET", "")
}

// GetTokenTTL returns the token expiry. Zero (the default) means tokens
// never expire server-side; clients discard them.
func (Auth) GetTokenTTL() time.Duration {
	raw := GetEnv("TOKEN_TTL", "")
	if raw == "" {
		return 0
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return ttl
}

// GetWorkFactor returns the bcrypt cost for newly hashed secrets. Zero lets
// the accounts package pick its default.
func (Auth) GetWorkFactor() int {
	raw := GetEnv("HASH_WORK_FACTOR", "")
	cost, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return cost
}

func (Auth) GetHashConcurrency() int {
	raw := GetEnv("HASH_CONCURRENCY", "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

package accounts

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// DefaultWorkFactor is the bcrypt cost used when no explicit work factor is
// configured.
const DefaultWorkFactor = bcrypt.DefaultCost

// Account is a registered identity. SecretHash only ever holds the bcrypt
// hash of the secret; the plaintext never leaves the request that carried it.
type Account struct {
	ID         string    `json:"id,omitempty"`         // Unique identifier (ULID)
	Handle     string    `json:"handle,omitempty"`     // Unique display handle
	Contact    string    `json:"contact,omitempty"`    // Unique contact address
	SecretHash string    `json:"-"`                    // Hashed secret - never serialize
	CreatedAt  time.Time `json:"created_at,omitempty"` // When the account was registered
}

// Public is the caller-visible view of an account. It carries no secret
// material.
type Public struct {
	ID      string `json:"id"`
	Handle  string `json:"handle"`
	Contact string `json:"contact"`
}

func (a *Account) Public() Public {
	return Public{
		ID:      a.ID,
		Handle:  a.Handle,
		Contact: a.Contact,
	}
}

// HashSecret computes a salted bcrypt hash of the secret at the given cost.
// A cost outside bcrypt's supported range falls back to DefaultWorkFactor.
func HashSecret(secret string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultWorkFactor
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	return string(bytes), err
}

// CheckSecretHash reports whether the plaintext secret matches the stored
// hash. The comparison cost is governed by the cost recorded in the hash.
func CheckSecretHash(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// ValidContact reports whether contact looks like a deliverable address.
func ValidContact(contact string) bool {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return false
	}
	return strings.Contains(contact, "@") && strings.Contains(contact, ".")
}

// ValidateSecretStrength checks if a secret meets strength recommendations:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
// This is advisory (served by the strength-probe endpoint); registration does
// not enforce it.
func ValidateSecretStrength(secret string) error {
	if len(secret) < 8 {
		return fmt.Errorf("secret must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range secret {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("secret must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("secret must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("secret must contain at least one number")
	}

	return nil
}

// Package auth holds the admin panel's shared-secret check.
//
// The gate only hides the editor from casual visitors. The secret is a
// single shared value with no lockout or audit trail, so anything that needs
// real access control must sit behind a proper identity layer instead.
package auth

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultSecret is used when no ADMIN_PASSWORD is configured.
const DefaultSecret = "$R1yamahar1$"

// Gate compares candidates against one configured secret
type Gate struct {
	secret string
	hashed bool
}

// NewGate builds a gate for secret. An empty secret falls back to
// DefaultSecret. Secrets that look like bcrypt hashes are compared as hashes.
func NewGate(secret string) *Gate {
	if secret == "" {
		slog.Warn("ADMIN_PASSWORD not set, admin panel is using the built-in default password")
		secret = DefaultSecret
	}
	return &Gate{
		secret: secret,
		hashed: isBcrypt(secret),
	}
}

// Authenticate reports whether candidate matches the secret
func (g *Gate) Authenticate(candidate string) bool {
	if g.hashed {
		return bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(candidate)) == 1
}

func isBcrypt(s string) bool {
	if len(s) != 60 {
		return false
	}
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

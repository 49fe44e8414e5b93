// Package token issues and verifies the signed, self-contained tokens used by
// the password-reset flow. A token binds an email address to an issuance time;
// nothing is persisted server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// audience scopes tokens to the reset flow so they cannot be replayed against
// any other signed-token surface.
const audience = "email-confirm"

// DefaultMaxAge is the validity window for reset tokens.
const DefaultMaxAge = time.Hour

// ErrInvalidToken covers every verification failure. Signature mismatch and
// expiry are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer signs and verifies reset tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer builds an Issuer. The secret must come from configuration; an
// empty secret is refused.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: secret must not be empty")
	}
	return &Issuer{secret: []byte(secret), now: time.Now}, nil
}

type resetClaims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed token embedding the email and the current time.
func (i *Issuer) Issue(email string) (string, error) {
	claims := &resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			Audience: jwt.ClaimStrings{audience},
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks the signature, audience, and age of tok and returns the bound
// email address. Any failure is reported as ErrInvalidToken.
func (i *Issuer) Verify(tok string, maxAge time.Duration) (string, error) {
	claims := &resetClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithAudience(audience))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.IssuedAt == nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	if i.now().Sub(claims.IssuedAt.Time) > maxAge {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

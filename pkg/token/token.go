// Package token implements the stateless session credential: a compact
// three-segment HMAC-SHA256 signed token carrying the account identity and a
// bounded validity window. Nothing is persisted; a token is re-validated from
// scratch on every request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is the single failure result of Parse. Malformed encoding, a bad
// signature, and an expired token are deliberately indistinguishable.
var ErrInvalid = errors.New("token tidak valid")

// Claims are the session claims embedded in an issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Codec issues and verifies session tokens with an injected signing secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New builds a Codec. ttl is the validity window stamped into every issued
// token; zero falls back to 24 hours.
func New(secret string, ttl time.Duration) *Codec {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given account identity, valid from now until
// now + ttl.
func (c *Codec) Issue(userID int64, username, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse verifies a presented token and returns its claims. Every failure
// mode collapses to ErrInvalid.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}

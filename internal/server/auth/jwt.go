// Package auth issues and verifies the signed access tokens used by the HTTP
// API, and carries the authenticated user id through request contexts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies HS256 access tokens with a single server secret.
// A Codec is safe for concurrent use once constructed.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock overrides the clock used for iat/exp and for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec for secret. The secret must not be empty.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty signing secret")
	}
	c := &Codec{secret: secret, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Encode returns a token whose subject is subject and which expires ttl after
// now.
func (c *Codec) Encode(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("auth: empty token subject")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("auth: non-positive token ttl %s", ttl)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its subject.
//
// Failures are common.ErrBadSignature, common.ErrTokenExpired or
// common.ErrMalformedToken. The signature is checked before any claim, so a
// forged token never reports expiry.
func (c *Codec) Decode(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", common.ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	default:
		return "", common.ErrMalformedToken
	}

	if claims.Subject == "" {
		return "", common.ErrMalformedToken
	}
	return claims.Subject, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultIssuer = "advising"

// CodecConfig configures a Codec. Secret and TTL are required.
type CodecConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Token is a signed session credential and the window it is valid for.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// sessionClaims embeds the full identity under the "user" claim. NumericDate
// only has second precision, so the exact expiry travels in exp_ms and exp is
// rounded up to the next whole second.
type sessionClaims struct {
	User        Identity `json:"user"`
	ExpiresAtMs int64    `json:"exp_ms"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewCodec validates cfg and builds a Codec.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session codec requires a signing key")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session codec requires a positive TTL")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	c := &Codec{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    cfg.Now,
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(cfg.Issuer),
	)
	return c, nil
}

// Issue signs identity into a token valid for [now, now+TTL).
func (c *Codec) Issue(identity Identity) (Token, error) {
	if err := identity.Validate(); err != nil {
		return Token{}, fmt.Errorf("issue session: %w", err)
	}

	issuedAt := c.now().Truncate(time.Millisecond)
	expiresAt := issuedAt.Add(c.ttl)

	claims := &sessionClaims{
		User:        identity,
		ExpiresAtMs: expiresAt.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt.Truncate(time.Second)),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
		},
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session: %w", err)
	}
	return Token{Value: value, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Verify returns the embedded identity, or false when the token is
// malformed, badly signed, expired or carries an inconsistent identity.
func (c *Codec) Verify(raw string) (Identity, bool) {
	if raw == "" {
		return Identity{}, false
	}

	token, err := c.parser.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, false
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.ExpiresAt == nil || claims.ExpiresAtMs <= 0 {
		return Identity{}, false
	}
	expiresAt := time.UnixMilli(claims.ExpiresAtMs)
	if expiresAt.After(claims.ExpiresAt.Time) || !c.now().Before(expiresAt) {
		return Identity{}, false
	}
	if claims.Subject != claims.User.ID {
		return Identity{}, false
	}
	if err := claims.User.Validate(); err != nil {
		return Identity{}, false
	}
	return claims.User, true
}

func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); !r.Equal(t) {
		return r.Add(time.Second)
	}
	return t
}

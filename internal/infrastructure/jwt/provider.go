package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/alumni-connect-api/internal/config"
	"github.com/alumni-connect-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the session token payload. UID is the profile's CAS uid.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens. A token lives from
// issuance to expiry; there is no refresh or revocation path — a new token
// requires a full re-authentication.
type Provider struct {
	secret []byte
	expiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &Provider{secret: []byte(cfg.JWTSecret), expiry: cfg.JWTExpiry}, nil
}

// Expiry returns the configured token lifetime.
func (p *Provider) Expiry() time.Duration { return p.expiry }

// Issue signs a token embedding the claims with exp = now + the configured TTL.
func (p *Provider) Issue(uid, email, name string) (string, error) {
	return p.IssueWithTTL(uid, email, name, p.expiry)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (p *Provider) IssueWithTTL(uid, email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:   uid,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify validates the signature and expiry and returns the embedded claims.
// Returns domain.ErrTokenExpired for expired tokens and domain.ErrTokenMalformed
// for everything else that fails to parse or verify.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%v: %w", err, domain.ErrTokenMalformed)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrTokenMalformed)
	}
	return claims, nil
}

// IsValid reports whether the token verifies, swallowing the reason. For call
// sites that only need a yes/no gate.
func (p *Provider) IsValid(tokenStr string) bool {
	_, err := p.Verify(tokenStr)
	return err == nil
}

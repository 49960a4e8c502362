// Package jwt implements token issuance and validation for the
// identity module using HMAC-signed JWTs.
//
// Tokens are immutable bearer credentials carrying the subject (email),
// the role name as a snapshot taken at issuance, issued-at, and
// expiration claims. There is no revocation list: a token stays valid
// until its expiration or a failed signature check. A role change
// therefore takes effect on the next login, not on outstanding tokens.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkravets/userhub/internal/identity"
)

// Config contains authenticator configuration.
type Config struct {
	SecretKey string
	TokenTTL  time.Duration
}

// Claims is the signed payload embedded in every issued token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and validates HS256-signed tokens with a
// process-wide secret key. The key is read-only after construction,
// so the authenticator is safe for concurrent use.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator creates an authenticator. The secret key must be
// validated at startup (config.Validate); an empty key here means the
// process should never have gotten this far.
func NewAuthenticator(cfg Config) *Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Authenticator{
		secret: []byte(cfg.SecretKey),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token asserting subject and role. Two calls
// at different times produce different tokens because iat/exp differ.
func (a *Authenticator) Issue(_ context.Context, subject, role string) (string, error) {
	now := a.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiration, checks that the subject
// claim equals expectedSubject, and returns the role claim.
func (a *Authenticator) Validate(ctx context.Context, token, expectedSubject string) (string, error) {
	subject, role, err := a.ValidateToken(ctx, token)
	if err != nil {
		return "", err
	}
	if subject != expectedSubject {
		return "", identity.ErrInvalidToken
	}
	return role, nil
}

// ValidateToken verifies signature and expiration and returns the
// subject and role claims. Used by the authentication middleware.
func (a *Authenticator) ValidateToken(_ context.Context, token string) (string, string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, a.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", identity.ErrExpiredToken
		}
		return "", "", identity.ErrInvalidToken
	}
	return claims.Subject, claims.Role, nil
}

// ExtractSubject returns the subject claim without verifying the
// signature. Callers must sit behind a verified request path.
func (a *Authenticator) ExtractSubject(token string) (string, error) {
	claims, err := a.parseUnverified(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRole returns the role claim without verifying the signature.
func (a *Authenticator) ExtractRole(token string) (string, error) {
	claims, err := a.parseUnverified(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (a *Authenticator) parseUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, identity.ErrInvalidToken
	}
	return claims, nil
}

func (a *Authenticator) keyFunc(_ *jwt.Token) (interface{}, error) {
	return a.secret, nil
}

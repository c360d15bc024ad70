// Package auth signs access tokens and hashes passwords for the users context.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// DefaultTokenTTL applies when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

const issuer = "go-gin-delivery-api"

var _ userports.TokenIssuer = (*JWTIssuer)(nil)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens whose subject is the user ID and whose jti names the session.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	if now != nil {
		i.now = now
	}
	return i
}

func (i *JWTIssuer) Issue(principal identity.Principal) (userports.IssuedToken, error) {
	if len(i.secret) == 0 {
		return userports.IssuedToken{}, errors.New("jwt secret not configured")
	}
	now := i.now()
	expiresAt := now.Add(i.ttl)
	tokenID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(principal.ID, 10),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return userports.IssuedToken{}, err
	}
	return userports.IssuedToken{Value: signed, ID: tokenID, ExpiresAt: expiresAt}, nil
}

func (i *JWTIssuer) Verify(raw string) (userports.VerifiedToken, error) {
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(raw, parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return userports.VerifiedToken{}, err
	}
	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return userports.VerifiedToken{}, fmt.Errorf("invalid subject %q", parsed.Subject)
	}
	role, ok := identity.ParseRole(parsed.Role)
	if !ok {
		return userports.VerifiedToken{}, fmt.Errorf("invalid role %q", parsed.Role)
	}
	return userports.VerifiedToken{
		Principal: identity.Principal{ID: userID, Role: role},
		ID:        parsed.ID,
	}, nil
}

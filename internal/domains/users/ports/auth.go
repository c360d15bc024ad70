package ports

import (
	"time"

	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// IssuedToken is a signed access token and the session it belongs to.
type IssuedToken struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// VerifiedToken is what a valid access token asserts.
type VerifiedToken struct {
	Principal identity.Principal
	ID        string
}

type TokenIssuer interface {
	Issue(principal identity.Principal) (IssuedToken, error)
	Verify(token string) (VerifiedToken, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

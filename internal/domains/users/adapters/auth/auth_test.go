package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

func TestJWTIssuerRoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("a-very-long-test-secret", time.Hour)
	principal := identity.Principal{ID: 42, Role: identity.RoleOwner}

	issued, err := issuer.Issue(principal)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	verified, err := issuer.Verify(issued.Value)
	require.NoError(t, err)
	require.Equal(t, principal, verified.Principal)
	require.Equal(t, issued.ID, verified.ID)
}

func TestJWTIssuerRejectsExpiredAndForeignTokens(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	issuer := NewJWTIssuer("a-very-long-test-secret", time.Hour).WithClock(func() time.Time { return now })

	issued, err := issuer.Issue(identity.Principal{ID: 1, Role: identity.RoleUser})
	require.NoError(t, err)

	now = start.Add(2 * time.Hour)
	_, err = issuer.Verify(issued.Value)
	require.Error(t, err)

	now = start
	other := NewJWTIssuer("another-long-test-secret", time.Hour).WithClock(func() time.Time { return now })
	_, err = other.Verify(issued.Value)
	require.Error(t, err)

	_, err = issuer.Verify("not-a-token")
	require.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("abcd123!")
	require.NoError(t, err)
	require.NotEqual(t, "abcd123!", hash)
	require.NoError(t, hasher.Compare(hash, "abcd123!"))
	require.Error(t, hasher.Compare(hash, "abcd123?"))
}

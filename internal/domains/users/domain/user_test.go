package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

func TestValidatePassword(t *testing.T) {
	valid := []string{"abcd123!", "Passw0rd#", "a1~aaaaaaaaaaaaaaaaa"}
	for _, password := range valid {
		require.NoError(t, ValidatePassword(password), password)
	}
	invalid := []string{
		"a1!",
		"a1!aaaaaaaaaaaaaaaaaa",
		"abcdefgh!",
		"12345678!",
		"abcd1234",
		"abcd 123!",
		"비밀번호123!",
	}
	for _, password := range invalid {
		require.ErrorIs(t, ValidatePassword(password), ErrWeakPassword, password)
	}
}

func TestNewUserNormalizesEmailAndRole(t *testing.T) {
	user, err := NewUser("  Owner@Example.COM ", "hash", identity.RoleOwner)
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", user.Email)
	require.Equal(t, identity.RoleOwner, user.Role)

	user, err = NewUser("eater@example.com", "hash", "")
	require.NoError(t, err)
	require.Equal(t, identity.RoleUser, user.Role)

	_, err = NewUser("not-an-email", "hash", identity.RoleUser)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeIssuer encodes the principal into the token and remembers issued IDs.
type fakeIssuer struct {
	seq    int
	issued map[string]ports.VerifiedToken
}

func newFakeIssuer() *fakeIssuer {
	return &fakeIssuer{issued: map[string]ports.VerifiedToken{}}
}

func (f *fakeIssuer) Issue(principal identity.Principal) (ports.IssuedToken, error) {
	f.seq++
	id := fmt.Sprintf("jti-%d", f.seq)
	value := "token-" + id
	f.issued[value] = ports.VerifiedToken{Principal: principal, ID: id}
	return ports.IssuedToken{Value: value, ID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeIssuer) Verify(token string) (ports.VerifiedToken, error) {
	verified, ok := f.issued[token]
	if !ok {
		return ports.VerifiedToken{}, errors.New("unknown token")
	}
	return verified, nil
}

func newTestService(opts ...Option) *Service {
	return NewService(memory.NewRepository(), memory.NewSessionStore(), newFakeIssuer(), plainHasher{}, opts...)
}

func TestSignupValidatesEmailAndPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, types.SignupInput{Email: "not-an-email", Password: "abcd123!"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "abcdefgh"})
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	user, err := svc.Signup(ctx, types.SignupInput{Email: " A@Example.com ", Password: "abcd123!"})
	require.NoError(t, err)
	require.Equal(t, "a@example.com", user.Email)
	require.Equal(t, identity.RoleUser, user.Role)
	require.Equal(t, "hashed:abcd123!", user.PasswordHash)

	_, err = svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "other12!"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignupOwnerRequiresToken(t *testing.T) {
	ctx := context.Background()

	disabled := newTestService()
	_, err := disabled.Signup(ctx, types.SignupInput{Email: "o@example.com", Password: "abcd123!", Owner: true})
	require.ErrorIs(t, err, domain.ErrOwnerTokenMismatch)

	svc := newTestService(WithOwnerToken("owner-secret"))
	_, err = svc.Signup(ctx, types.SignupInput{Email: "o@example.com", Password: "abcd123!", Owner: true, OwnerToken: "wrong"})
	require.ErrorIs(t, err, domain.ErrOwnerTokenMismatch)

	owner, err := svc.Signup(ctx, types.SignupInput{Email: "o@example.com", Password: "abcd123!", Owner: true, OwnerToken: "owner-secret"})
	require.NoError(t, err)
	require.Equal(t, identity.RoleOwner, owner.Role)
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "abcd123!"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, types.LoginInput{Email: "a@example.com", Password: "wrong123!"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, types.LoginInput{Email: "missing@example.com", Password: "abcd123!"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	session, err := svc.Login(ctx, types.LoginInput{Email: "A@example.com", Password: "abcd123!"})
	require.NoError(t, err)
	require.Equal(t, user.ID, session.User.ID)

	principal, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, identity.Principal{ID: user.ID, Role: identity.RoleUser}, principal)

	_, err = svc.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	require.NoError(t, svc.Logout(ctx, user.ID))
	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, domain.ErrSessionEnded)
}

func TestChangePasswordChecksCurrentPasswordFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "abcd123!"})
	require.NoError(t, err)
	self := user.Principal()

	err = svc.ChangePassword(ctx, types.ChangePasswordInput{Requester: identity.Principal{ID: user.ID + 1, Role: identity.RoleUser}, UserID: user.ID, CurrentPassword: "abcd123!", NewPassword: "wxyz789?"})
	require.ErrorIs(t, err, domain.ErrNotAccountHolder)

	err = svc.ChangePassword(ctx, types.ChangePasswordInput{Requester: self, UserID: user.ID, CurrentPassword: "wrong123!", NewPassword: "short"})
	require.ErrorIs(t, err, domain.ErrCurrentPassword)
	require.Equal(t, "current password does not match", err.Error())

	err = svc.ChangePassword(ctx, types.ChangePasswordInput{Requester: self, UserID: user.ID, CurrentPassword: "abcd123!", NewPassword: "short"})
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(ctx, types.ChangePasswordInput{Requester: self, UserID: user.ID, CurrentPassword: "abcd123!", NewPassword: "wxyz789?"}))

	stored, err := svc.repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "hashed:wxyz789?", stored.PasswordHash)

	_, err = svc.Login(ctx, types.LoginInput{Email: "a@example.com", Password: "abcd123!"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, types.LoginInput{Email: "a@example.com", Password: "wxyz789?"})
	require.NoError(t, err)
}

func TestWithdrawRemovesAccountAndSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "abcd123!"})
	require.NoError(t, err)
	session, err := svc.Login(ctx, types.LoginInput{Email: "a@example.com", Password: "abcd123!"})
	require.NoError(t, err)

	err = svc.Withdraw(ctx, types.WithdrawInput{Requester: user.Principal(), UserID: user.ID, Password: "wrong123!"})
	require.ErrorIs(t, err, domain.ErrPasswordMismatch)
	require.Equal(t, "password does not match", err.Error())
	_, err = svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	err = svc.Withdraw(ctx, types.WithdrawInput{Requester: identity.Principal{ID: 99, Role: identity.RoleUser}, UserID: user.ID, Password: "abcd123!"})
	require.ErrorIs(t, err, domain.ErrNotAccountHolder)

	require.NoError(t, svc.Withdraw(ctx, types.WithdrawInput{Requester: user.Principal(), UserID: user.ID, Password: "abcd123!"}))

	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, domain.ErrSessionEnded)
	_, err = svc.repo.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	again, err := svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "abcd123!"})
	require.NoError(t, err)
	require.NotEqual(t, user.ID, again.ID)
}

type failingSessions struct {
	ports.SessionStore
}

func (failingSessions) Delete(context.Context, int64) error { return errors.New("session store down") }

func TestWithdrawKeepsAccountWhenSessionsCannotBeEnded(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo, failingSessions{SessionStore: memory.NewSessionStore()}, newFakeIssuer(), plainHasher{})
	ctx := context.Background()

	user, err := svc.Signup(ctx, types.SignupInput{Email: "a@example.com", Password: "abcd123!"})
	require.NoError(t, err)

	err = svc.Withdraw(ctx, types.WithdrawInput{Requester: user.Principal(), UserID: user.ID, Password: "abcd123!"})
	require.ErrorContains(t, err, "session store down")

	_, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
}

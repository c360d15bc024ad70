package types

import (
	"time"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// SignupInput registers an account. Owner accounts must present the shared owner token.
type SignupInput struct {
	Email      string
	Password   string
	Owner      bool
	OwnerToken string
}

type LoginInput struct {
	Email    string
	Password string
}

// ChangePasswordInput replaces the password of UserID, which must be the requester.
type ChangePasswordInput struct {
	Requester       identity.Principal
	UserID          int64
	CurrentPassword string
	NewPassword     string
}

// WithdrawInput closes the account of UserID after re-checking its password.
type WithdrawInput struct {
	Requester identity.Principal
	UserID    int64
	Password  string
}

// Session is the result of a successful login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

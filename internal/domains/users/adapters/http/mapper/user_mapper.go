package mapper

import (
	"time"

	usertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// SignupRequest is the signup payload. OwnerToken is only read when Owner is set.
type SignupRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Owner      bool   `json:"owner"`
	OwnerToken string `json:"ownerToken"`
}

func (r SignupRequest) ToInput() usertypes.SignupInput {
	return usertypes.SignupInput{
		Email:      r.Email,
		Password:   r.Password,
		Owner:      r.Owner,
		OwnerToken: r.OwnerToken,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToInput() usertypes.LoginInput {
	return usertypes.LoginInput{Email: r.Email, Password: r.Password}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (r ChangePasswordRequest) ToInput(requester identity.Principal, userID int64) usertypes.ChangePasswordInput {
	return usertypes.ChangePasswordInput{
		Requester:       requester,
		UserID:          userID,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
	}
}

// WithdrawRequest re-confirms the password before the account is deleted.
type WithdrawRequest struct {
	Password string `json:"password" binding:"required"`
}

func (r WithdrawRequest) ToInput(requester identity.Principal, userID int64) usertypes.WithdrawInput {
	return usertypes.WithdrawInput{Requester: requester, UserID: userID, Password: r.Password}
}

// User is the public account view. The password hash never leaves the service.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Session struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        User      `json:"user"`
}

func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func FromSession(session *usertypes.Session) Session {
	if session == nil {
		return Session{}
	}
	return Session{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		User:        FromDomainUser(session.User),
	}
}

package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// Service exposes account and session use cases to adapters.
type Service interface {
	Signup(ctx context.Context, input types.SignupInput) (*domain.User, error)
	Login(ctx context.Context, input types.LoginInput) (*types.Session, error)
	Logout(ctx context.Context, userID int64) error
	Authenticate(ctx context.Context, token string) (identity.Principal, error)
	ChangePassword(ctx context.Context, input types.ChangePasswordInput) error
	Withdraw(ctx context.Context, input types.WithdrawInput) error
}

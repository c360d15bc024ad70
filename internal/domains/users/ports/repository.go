package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var ErrNotFound = sharederrors.New(sharederrors.KindNotFound, "user not found")

// Repository persists accounts. Create reports domain.ErrEmailTaken on a duplicate email;
// UpdatePassword and Delete report ErrNotFound for an unknown id.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var ErrNotFound = sharederrors.New(sharederrors.KindNotFound, "order not found")

// Repository persists orders. Orders are never deleted.
type Repository interface {
	// Save inserts an order without an ID, otherwise updates its status.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetForUpdate loads the order and, inside a transaction, locks it until commit.
	GetForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	// ListByShop returns the shop's orders newest first, filtered by status when statuses is non-empty.
	ListByShop(ctx context.Context, shopID int64, statuses []domain.Status) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
}

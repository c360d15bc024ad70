package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
	ChangeStatus(ctx context.Context, input types.ChangeStatusInput) (*domain.Order, error)
	GetOrder(ctx context.Context, input types.GetOrderInput) (*domain.Order, error)
	ListShopOrders(ctx context.Context, input types.ListShopOrdersInput) ([]*domain.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]*domain.Order, error)
}

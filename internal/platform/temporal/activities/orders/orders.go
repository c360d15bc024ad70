package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

const (
	// PlaceOrderActivityName validates and stores a new order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs order placement and returns the new order ID. Business rejections are
// reported as non-retryable application errors typed with their failure kind.
func (a *Activities) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "shopId", input.ShopID)
		return 0, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "shopId", input.ShopID, "menuId", input.MenuID, "userId", input.Requester.ID)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		if kind, ok := sharederrors.KindOf(err); ok {
			logger.Warn("PlaceOrder activity rejected", "shopId", input.ShopID, "kind", string(kind), "error", err)
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), string(kind), nil)
		}
		logger.Error("PlaceOrder activity failed", "shopId", input.ShopID, "error", err)
		return 0, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order.ID, nil
}

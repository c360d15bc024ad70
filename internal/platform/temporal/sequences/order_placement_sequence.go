package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-delivery-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the activities needed to place an order and returns its ID.
func RunOrderPlacementSequence(ctx workflow.Context, input ordertypes.PlaceOrderInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "shopId", input.ShopID, "menuId", input.MenuID)
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var orderID int64
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, input).Get(ctx, &orderID)
	if err != nil {
		logger.Error("order placement sequence failed", "shopId", input.ShopID, "error", err)
		return 0, err
	}
	logger.Info("order placement sequence completed", "orderId", orderID)
	return orderID, nil
}

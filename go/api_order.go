package deliveryserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
)

// HeaderIdempotencyKey lets clients retry POST /v1/orders safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders service and placement workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil workflows places orders inline.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /v1/orders
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload orderhttpmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	order, err := api.placeOrder(c.Request.Context(), payload.ToInput(principalFrom(c), key))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /v1/orders/:orderId
func (api *OrderAPI) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), ordertypes.GetOrderInput{
		OrderID: orderID,
		ActorID: principalFrom(c).ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Patch /v1/orders/:orderId/status
func (api *OrderAPI) ChangeStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.ChangeStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := api.service.ChangeStatus(c.Request.Context(), ordertypes.ChangeStatusInput{
		OrderID: orderID,
		Status:  payload.Status,
		ActorID: principalFrom(c).ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /v1/users/me/orders
func (api *OrderAPI) ListMyOrders(c *gin.Context) {
	orders, err := api.service.ListUserOrders(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /v1/shops/:shopId/orders?status=
// status may repeat or hold a comma-separated list.
func (api *OrderAPI) ListShopOrders(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	var statuses []string
	for _, raw := range c.QueryArray("status") {
		for _, status := range strings.Split(raw, ",") {
			if status = strings.TrimSpace(status); status != "" {
				statuses = append(statuses, status)
			}
		}
	}
	orders, err := api.service.ListShopOrders(c.Request.Context(), ordertypes.ListShopOrdersInput{
		ShopID:   shopID,
		ActorID:  principalFrom(c).ID,
		Statuses: statuses,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

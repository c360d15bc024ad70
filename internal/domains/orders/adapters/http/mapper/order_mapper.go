package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// PlaceOrderRequest is the body of POST /v1/orders. Field checks happen in the service so
// that rejections follow the eligibility order.
type PlaceOrderRequest struct {
	ShopID  int64  `json:"shopId"`
	MenuID  int64  `json:"menuId"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (r PlaceOrderRequest) ToInput(requester identity.Principal, idempotencyKey string) ordertypes.PlaceOrderInput {
	return ordertypes.PlaceOrderInput{
		Requester:      requester,
		ShopID:         r.ShopID,
		MenuID:         r.MenuID,
		Address:        r.Address,
		Phone:          r.Phone,
		IdempotencyKey: idempotencyKey,
	}
}

// ChangeStatusRequest names the target status; matching is case-insensitive.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	ShopID    int64           `json:"shopId"`
	MenuID    int64           `json:"menuId"`
	MenuName  string          `json:"menuName"`
	MenuPrice decimal.Decimal `json:"menuPrice"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:        order.ID,
		UserID:    order.UserID,
		ShopID:    order.ShopID,
		MenuID:    order.MenuID,
		MenuName:  order.Menu.Name(),
		MenuPrice: order.Menu.Price(),
		Address:   order.Address,
		Phone:     order.Phone,
		Status:    order.Status.String(),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

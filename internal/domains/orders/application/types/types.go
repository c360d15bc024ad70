package types

import "github.com/Apurer/go-gin-delivery-api/internal/shared/identity"

// PlaceOrderInput carries an order request from a customer.
type PlaceOrderInput struct {
	Requester identity.Principal
	ShopID    int64
	MenuID    int64
	Address   string
	Phone     string
	// IdempotencyKey makes retries of the same request return the original order.
	IdempotencyKey string
}

// ChangeStatusInput asks to move an order to Status, a free-form status name.
type ChangeStatusInput struct {
	OrderID int64
	Status  string
	ActorID int64
}

type GetOrderInput struct {
	OrderID int64
	ActorID int64
}

// ListShopOrdersInput filters by status names when Statuses is non-empty.
type ListShopOrdersInput struct {
	ShopID   int64
	ActorID  int64
	Statuses []string
}

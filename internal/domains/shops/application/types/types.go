package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// ShopAttributes are the editable fields of a shop. Times use HH:MM or HH:MM:SS.
type ShopAttributes struct {
	Name           string
	OpenTime       string
	CloseTime      string
	MinOrderAmount decimal.Decimal
}

type CreateShopInput struct {
	Requester identity.Principal
	ShopAttributes
}

type UpdateShopInput struct {
	ShopID  int64
	ActorID int64
	ShopAttributes
}

type CreateMenuInput struct {
	ShopID  int64
	ActorID int64
	Name    string
	Price   decimal.Decimal
}

type UpdateMenuInput struct {
	ShopID  int64
	MenuID  int64
	ActorID int64
	Name    string
	Price   decimal.Decimal
}

type DeleteMenuInput struct {
	ShopID  int64
	MenuID  int64
	ActorID int64
}

// ShopDetails is a shop together with the menus it currently sells.
type ShopDetails struct {
	Shop  *domain.Shop
	Menus []*domain.Menu
}

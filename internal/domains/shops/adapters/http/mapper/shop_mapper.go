package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	shoptypes "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	shopdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
)

// ShopRequest is the body of shop create and update calls. Times use HH:MM or HH:MM:SS.
type ShopRequest struct {
	Name           string          `json:"name" binding:"required"`
	OpenTime       string          `json:"openTime" binding:"required"`
	CloseTime      string          `json:"closeTime" binding:"required"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
}

func (r ShopRequest) Attributes() shoptypes.ShopAttributes {
	return shoptypes.ShopAttributes{
		Name:           r.Name,
		OpenTime:       r.OpenTime,
		CloseTime:      r.CloseTime,
		MinOrderAmount: r.MinOrderAmount,
	}
}

// MenuRequest is the body of menu create and update calls.
type MenuRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

type Shop struct {
	ID             int64           `json:"id"`
	OwnerID        int64           `json:"ownerId"`
	Name           string          `json:"name"`
	OpenTime       string          `json:"openTime"`
	CloseTime      string          `json:"closeTime"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	Closed         bool            `json:"closed"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ShopDetails is a shop together with its active menus.
type ShopDetails struct {
	Shop
	Menus []Menu `json:"menus"`
}

type Menu struct {
	ID     int64           `json:"id"`
	ShopID int64           `json:"shopId"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status"`
}

func FromDomainShop(shop *shopdomain.Shop) Shop {
	if shop == nil {
		return Shop{}
	}
	return Shop{
		ID:             shop.ID,
		OwnerID:        shop.Owner,
		Name:           shop.Name,
		OpenTime:       shop.Hours.Open.String(),
		CloseTime:      shop.Hours.Close.String(),
		MinOrderAmount: shop.MinOrderAmount,
		Closed:         shop.Closed,
		CreatedAt:      shop.CreatedAt,
	}
}

// FromShopDetails renders a shop with its menus. Menus is never nil so clients get [].
func FromShopDetails(details *shoptypes.ShopDetails) ShopDetails {
	if details == nil {
		return ShopDetails{Menus: []Menu{}}
	}
	return ShopDetails{
		Shop:  FromDomainShop(details.Shop),
		Menus: FromDomainMenus(details.Menus),
	}
}

func FromDomainShops(shops []*shopdomain.Shop) []Shop {
	result := make([]Shop, 0, len(shops))
	for _, shop := range shops {
		result = append(result, FromDomainShop(shop))
	}
	return result
}

func FromDomainMenu(menu *shopdomain.Menu) Menu {
	if menu == nil {
		return Menu{}
	}
	return Menu{
		ID:     menu.ID,
		ShopID: menu.ShopID,
		Name:   menu.Name,
		Price:  menu.Price,
		Status: string(menu.Status),
	}
}

func FromDomainMenus(menus []*shopdomain.Menu) []Menu {
	result := make([]Menu, 0, len(menus))
	for _, menu := range menus {
		result = append(result, FromDomainMenu(menu))
	}
	return result
}

// Package catalog exposes the shops context to order placement.
package catalog

import (
	"context"
	"errors"

	orderdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	shopports "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
)

var (
	_ orderports.ShopDirectory = (*Catalog)(nil)
	_ orderports.MenuCatalog   = (*Catalog)(nil)
)

// Catalog reads shops and menus straight from the shops repositories.
type Catalog struct {
	shops shopports.ShopRepository
	menus shopports.MenuRepository
}

func New(shops shopports.ShopRepository, menus shopports.MenuRepository) *Catalog {
	return &Catalog{shops: shops, menus: menus}
}

func (c *Catalog) FindShop(ctx context.Context, shopID int64) (*orderdomain.ShopView, error) {
	shop, err := c.shops.GetByID(ctx, shopID)
	if errors.Is(err, shopports.ErrNotFound) {
		return nil, orderports.ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	minimum := shop.MinOrderAmount
	return &orderdomain.ShopView{
		ID:             shop.ID,
		Owner:          shop.Owner,
		Hours:          shop.Hours,
		MinOrderAmount: &minimum,
		Closed:         shop.Closed,
	}, nil
}

// FindMenu only resolves active menus that belong to shopID.
func (c *Catalog) FindMenu(ctx context.Context, shopID, menuID int64) (*orderdomain.MenuView, error) {
	menu, err := c.menus.GetByID(ctx, menuID)
	if errors.Is(err, shopports.ErrMenuNotFound) {
		return nil, orderports.ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}
	if menu.ShopID != shopID || !menu.Active() {
		return nil, orderports.ErrMenuNotFound
	}
	price := menu.Price
	return &orderdomain.MenuView{
		ID:     menu.ID,
		ShopID: menu.ShopID,
		Name:   menu.Name,
		Price:  &price,
	}, nil
}

package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	ErrShopNotFound = sharederrors.New(sharederrors.KindNotFound, "shop not found")
	ErrMenuNotFound = sharederrors.New(sharederrors.KindNotFound, "menu not found")
)

// ShopDirectory resolves the shop attributes order placement depends on.
type ShopDirectory interface {
	FindShop(ctx context.Context, shopID int64) (*domain.ShopView, error)
}

// MenuCatalog resolves an active menu item scoped to its shop.
type MenuCatalog interface {
	FindMenu(ctx context.Context, shopID, menuID int64) (*domain.MenuView, error)
}

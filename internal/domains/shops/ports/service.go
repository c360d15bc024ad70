package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
)

// Service exposes shop and menu management.
type Service interface {
	CreateShop(ctx context.Context, input types.CreateShopInput) (*domain.Shop, error)
	UpdateShop(ctx context.Context, input types.UpdateShopInput) (*domain.Shop, error)
	CloseShop(ctx context.Context, shopID, actorID int64) (*domain.Shop, error)
	GetShop(ctx context.Context, shopID int64) (*types.ShopDetails, error)
	SearchShops(ctx context.Context, name string) ([]*domain.Shop, error)
	CreateMenu(ctx context.Context, input types.CreateMenuInput) (*domain.Menu, error)
	UpdateMenu(ctx context.Context, input types.UpdateMenuInput) (*domain.Menu, error)
	DeleteMenu(ctx context.Context, input types.DeleteMenuInput) (*domain.Menu, error)
}

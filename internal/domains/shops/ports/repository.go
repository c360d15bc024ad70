package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	ErrNotFound     = sharederrors.New(sharederrors.KindNotFound, "shop not found")
	ErrMenuNotFound = sharederrors.New(sharederrors.KindNotFound, "menu not found")
)

// ShopRepository abstracts shop persistence.
type ShopRepository interface {
	Save(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
	// CountOpenByOwner counts shops that are not closed. Inside a transaction it also
	// serializes concurrent shop creation for the same owner.
	CountOpenByOwner(ctx context.Context, ownerID int64) (int, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Shop, error)
}

// MenuRepository abstracts menu persistence.
type MenuRepository interface {
	Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error)
	GetByID(ctx context.Context, id int64) (*domain.Menu, error)
	ListActiveByShop(ctx context.Context, shopID int64) ([]*domain.Menu, error)
}

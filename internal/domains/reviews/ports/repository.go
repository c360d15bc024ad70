package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	ErrOrderNotFound = sharederrors.New(sharederrors.KindNotFound, "order not found")
	ErrShopNotFound  = sharederrors.New(sharederrors.KindNotFound, "shop not found")
)

// Repository abstracts review persistence. Save reports domain.ErrAlreadyReviewed when
// the order already has a review.
type Repository interface {
	Save(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)
	CountByShop(ctx context.Context, shopID int64) (int, error)
	// ListByShopAndRating returns reviews within the range, newest first.
	ListByShopAndRating(ctx context.Context, shopID int64, ratings domain.RatingRange) ([]*domain.Review, error)
}

// OrderReader resolves the order a review is attached to. Inside a transaction the
// order row stays locked until commit.
type OrderReader interface {
	FindOrder(ctx context.Context, orderID int64) (*domain.OrderView, error)
}

type ShopDirectory interface {
	ShopExists(ctx context.Context, shopID int64) (bool, error)
}

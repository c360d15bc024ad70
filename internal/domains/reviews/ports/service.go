package ports

import (
	"context"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
)

// Service exposes review creation and listing.
type Service interface {
	CreateReview(ctx context.Context, input types.CreateReviewInput) (*domain.Review, error)
	ListShopReviews(ctx context.Context, input types.ListShopReviewsInput) ([]*domain.Review, error)
}

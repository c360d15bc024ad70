package application

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

var _ ports.Service = (*Service)(nil)

// Service gates reviews on completed orders and serves rating-filtered listings.
type Service struct {
	repo   ports.Repository
	orders ports.OrderReader
	shops  ports.ShopDirectory
	tx     transaction.Manager
	clock  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source stamped on new reviews.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

func NewService(repo ports.Repository, orders ports.OrderReader, shops ports.ShopDirectory, tx transaction.Manager, opts ...Option) *Service {
	s := &Service{repo: repo, orders: orders, shops: shops, tx: tx, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = transaction.NewLocalManager()
	}
	return s
}

// CreateReview attaches the single review an order may have. Checks run in a fixed
// order and stop at the first failure.
func (s *Service) CreateReview(ctx context.Context, input types.CreateReviewInput) (*domain.Review, error) {
	var created *domain.Review
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindOrder(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if !identity.IsOwnerOf(order, input.ReviewerID) {
			return domain.ErrNotReviewer
		}
		exists, err := s.repo.ExistsByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyReviewed
		}
		if !order.Completed {
			return domain.ErrNotEligible
		}
		review, err := domain.NewReview(*order, input.Rating, input.Content, s.clock())
		if err != nil {
			return mapError(err)
		}
		created, err = s.repo.Save(ctx, review)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListShopReviews tells a shop without any review apart from a range that matches none.
func (s *Service) ListShopReviews(ctx context.Context, input types.ListShopReviewsInput) ([]*domain.Review, error) {
	ratings, err := domain.NewRatingRange(input.MinRating, input.MaxRating)
	if err != nil {
		return nil, mapError(err)
	}
	exists, err := s.shops.ShopExists(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ports.ErrShopNotFound
	}
	total, err := s.repo.CountByShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, domain.ErrNoReviews
	}
	reviews, err := s.repo.ListByShopAndRating(ctx, input.ShopID, ratings)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, domain.ErrEmptyRange
	}
	return reviews, nil
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory review persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	reviews map[int64]*domain.Review
	byOrder map[int64]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{reviews: map[int64]*domain.Review{}, byOrder: map[int64]int64{}}
}

func (r *Repository) Save(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOrder[review.OrderID]; ok {
		return nil, domain.ErrAlreadyReviewed
	}
	clone := *review
	r.nextID++
	clone.ID = r.nextID
	r.reviews[clone.ID] = &clone
	r.byOrder[clone.OrderID] = clone.ID
	saved := clone
	return &saved, nil
}

func (r *Repository) ExistsByOrderID(_ context.Context, orderID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byOrder[orderID]
	return ok, nil
}

func (r *Repository) CountByShop(_ context.Context, shopID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, review := range r.reviews {
		if review.ShopID == shopID {
			count++
		}
	}
	return count, nil
}

func (r *Repository) ListByShopAndRating(_ context.Context, shopID int64, ratings domain.RatingRange) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Review, 0)
	for _, review := range r.reviews {
		if review.ShopID == shopID && ratings.Contains(review.Rating) {
			clone := *review
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ReviewedAt.Equal(result[j].ReviewedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].ReviewedAt.After(result[j].ReviewedAt)
	})
	return result, nil
}

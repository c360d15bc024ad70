//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/postgres/pgtest"
)

func newReview(t *testing.T, orderID, shopID int64, rating int, at time.Time) *domain.Review {
	t.Helper()
	review, err := domain.NewReview(domain.OrderView{ID: orderID, Customer: 1, ShopID: shopID, Completed: true}, rating, "good", at)
	require.NoError(t, err)
	return review
}

func TestRepository_UniqueReviewPerOrder(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	saved, err := repo.Save(ctx, newReview(t, 1, 3, 5, now))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	exists, err := repo.ExistsByOrderID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Save(ctx, newReview(t, 1, 3, 1, now))
	require.ErrorIs(t, err, domain.ErrAlreadyReviewed)
}

func TestRepository_ListByShopAndRating(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i, rating := range []int{2, 5, 4, 3} {
		_, err := repo.Save(ctx, newReview(t, int64(i+1), 3, rating, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}
	_, err := repo.Save(ctx, newReview(t, 10, 4, 5, base))
	require.NoError(t, err)

	count, err := repo.CountByShop(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	reviews, err := repo.ListByShopAndRating(ctx, 3, domain.RatingRange{Min: 4, Max: 5})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, 5, reviews[1].Rating)

	none, err := repo.ListByShopAndRating(ctx, 99, domain.RatingRange{Min: 1, Max: 5})
	require.NoError(t, err)
	assert.Empty(t, none)
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/memory"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

const (
	customerID = int64(7)
	shopID     = int64(3)
)

type fakeOrders map[int64]domain.OrderView

func (f fakeOrders) FindOrder(_ context.Context, orderID int64) (*domain.OrderView, error) {
	order, ok := f[orderID]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return &order, nil
}

type fakeShops map[int64]bool

func (f fakeShops) ShopExists(_ context.Context, id int64) (bool, error) {
	return f[id], nil
}

type fixture struct {
	svc    *Service
	orders fakeOrders
	now    time.Time
}

func newFixture() *fixture {
	f := &fixture{
		orders: fakeOrders{},
		now:    time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(memory.NewRepository(), f.orders, fakeShops{shopID: true, 4: true}, nil,
		WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) completedOrder(id int64) {
	f.orders[id] = domain.OrderView{ID: id, Customer: customerID, ShopID: shopID, Completed: true}
}

func (f *fixture) review(t *testing.T, orderID int64, rating int) *domain.Review {
	t.Helper()
	f.completedOrder(orderID)
	f.now = f.now.Add(time.Minute)
	review, err := f.svc.CreateReview(context.Background(), types.CreateReviewInput{
		OrderID: orderID, ReviewerID: customerID, Rating: rating, Content: "tasty",
	})
	require.NoError(t, err)
	return review
}

func TestCreateReviewStoresSnapshot(t *testing.T) {
	f := newFixture()
	f.completedOrder(1)

	review, err := f.svc.CreateReview(context.Background(), types.CreateReviewInput{
		OrderID: 1, ReviewerID: customerID, Rating: 5, Content: "Still hot on arrival",
	})
	require.NoError(t, err)
	require.NotZero(t, review.ID)
	require.Equal(t, shopID, review.ShopID)
	require.Equal(t, customerID, review.UserID)
	require.Equal(t, f.now, review.ReviewedAt)
}

// A pending order cannot be reviewed.
func TestCreateReviewRejectsPendingOrder(t *testing.T) {
	f := newFixture()
	f.orders[1] = domain.OrderView{ID: 1, Customer: customerID, ShopID: shopID}

	_, err := f.svc.CreateReview(context.Background(), types.CreateReviewInput{
		OrderID: 1, ReviewerID: customerID, Rating: 4, Content: "ok",
	})
	require.ErrorIs(t, err, sharederrors.KindNotEligible)
	require.EqualError(t, err, "only completed deliveries may be reviewed")
}

func TestCreateReviewCheckOrder(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		input types.CreateReviewInput
		want  error
	}{
		{
			name:  "missing order",
			input: types.CreateReviewInput{OrderID: 99, ReviewerID: customerID, Rating: 9},
			want:  ports.ErrOrderNotFound,
		},
		{
			name:  "another customer is checked before eligibility",
			setup: func(f *fixture) { f.orders[1] = domain.OrderView{ID: 1, Customer: customerID, ShopID: shopID} },
			input: types.CreateReviewInput{OrderID: 1, ReviewerID: customerID + 1, Rating: 9},
			want:  domain.ErrNotReviewer,
		},
		{
			name:  "rating is checked last",
			setup: func(f *fixture) { f.orders[1] = domain.OrderView{ID: 1, Customer: customerID, ShopID: shopID} },
			input: types.CreateReviewInput{OrderID: 1, ReviewerID: customerID, Rating: 9, Content: "x"},
			want:  domain.ErrNotEligible,
		},
		{
			name:  "rating out of range",
			setup: func(f *fixture) { f.completedOrder(1) },
			input: types.CreateReviewInput{OrderID: 1, ReviewerID: customerID, Rating: 0, Content: "x"},
			want:  domain.ErrInvalidRating,
		},
		{
			name:  "blank content",
			setup: func(f *fixture) { f.completedOrder(1) },
			input: types.CreateReviewInput{OrderID: 1, ReviewerID: customerID, Rating: 3, Content: " "},
			want:  domain.ErrContentRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.svc.CreateReview(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateReviewOncePerOrder(t *testing.T) {
	f := newFixture()
	f.review(t, 1, 4)

	for i := 0; i < 2; i++ {
		_, err := f.svc.CreateReview(context.Background(), types.CreateReviewInput{
			OrderID: 1, ReviewerID: customerID, Rating: 1, Content: "changed my mind",
		})
		require.ErrorIs(t, err, domain.ErrAlreadyReviewed)
		require.ErrorIs(t, err, sharederrors.KindAlreadyExists)
	}
}

func TestCreateReviewInvalidRatingIsInvalidInput(t *testing.T) {
	f := newFixture()
	f.completedOrder(1)

	_, err := f.svc.CreateReview(context.Background(), types.CreateReviewInput{OrderID: 1, ReviewerID: customerID, Rating: 6, Content: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, sharederrors.KindInvalidArgument)
}

func intPtr(v int) *int { return &v }

// Reviews rated 2 and 3 exist but none match 4..5, which differs from a shop with no reviews.
func TestListShopReviewsDistinguishesEmptyRangeFromNoReviews(t *testing.T) {
	f := newFixture()
	f.review(t, 1, 2)
	f.review(t, 2, 3)
	ctx := context.Background()

	_, err := f.svc.ListShopReviews(ctx, types.ListShopReviewsInput{ShopID: shopID, MinRating: intPtr(4), MaxRating: intPtr(5)})
	require.ErrorIs(t, err, domain.ErrEmptyRange)
	require.ErrorIs(t, err, sharederrors.KindEmptyRange)

	_, err = f.svc.ListShopReviews(ctx, types.ListShopReviewsInput{ShopID: 4})
	require.ErrorIs(t, err, domain.ErrNoReviews)
	require.False(t, errors.Is(err, domain.ErrEmptyRange))
}

func TestListShopReviewsNewestFirstWithinRange(t *testing.T) {
	f := newFixture()
	first := f.review(t, 1, 5)
	f.review(t, 2, 1)
	third := f.review(t, 3, 4)

	reviews, err := f.svc.ListShopReviews(context.Background(), types.ListShopReviewsInput{ShopID: shopID, MinRating: intPtr(4)})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.Equal(t, third.ID, reviews[0].ID)
	require.Equal(t, first.ID, reviews[1].ID)

	all, err := f.svc.ListShopReviews(context.Background(), types.ListShopReviewsInput{ShopID: shopID})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestListShopReviewsValidatesBeforeLookup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.ListShopReviews(ctx, types.ListShopReviewsInput{ShopID: 999, MinRating: intPtr(0)})
	require.ErrorIs(t, err, domain.ErrInvalidRating)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ListShopReviews(ctx, types.ListShopReviewsInput{ShopID: 999, MinRating: intPtr(5), MaxRating: intPtr(1)})
	require.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = f.svc.ListShopReviews(ctx, types.ListShopReviewsInput{ShopID: 999})
	require.ErrorIs(t, err, ports.ErrShopNotFound)
}

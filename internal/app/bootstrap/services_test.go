package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	reviewtypes "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	reviewdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	shoptypes "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	usertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/users/application/types"
	platformobservability "github.com/Apurer/go-gin-delivery-api/internal/platform/observability"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// TestServicesEndToEnd drives one order from signup to review through the wired services.
func TestServicesEndToEnd(t *testing.T) {
	ctx := context.Background()
	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewServices(MemoryStores(), Settings{
		JWTSecret:  "0123456789abcdef",
		JWTTTL:     time.Hour,
		OwnerToken: "owner-secret",
		Location:   time.UTC,
		Clock:      func() time.Time { return noon },
		BcryptCost: bcrypt.MinCost,
	}, nil)

	_, err := svc.Users.Signup(ctx, usertypes.SignupInput{Email: "owner@example.com", Password: "abcd123!", Owner: true, OwnerToken: "owner-secret"})
	require.NoError(t, err)
	_, err = svc.Users.Signup(ctx, usertypes.SignupInput{Email: "eater@example.com", Password: "abcd123!"})
	require.NoError(t, err)

	ownerSession, err := svc.Users.Login(ctx, usertypes.LoginInput{Email: "owner@example.com", Password: "abcd123!"})
	require.NoError(t, err)
	owner, err := svc.Users.Authenticate(ctx, ownerSession.Token)
	require.NoError(t, err)
	eaterSession, err := svc.Users.Login(ctx, usertypes.LoginInput{Email: "eater@example.com", Password: "abcd123!"})
	require.NoError(t, err)
	eater, err := svc.Users.Authenticate(ctx, eaterSession.Token)
	require.NoError(t, err)

	shop, err := svc.Shops.CreateShop(ctx, shoptypes.CreateShopInput{
		Requester: owner,
		ShopAttributes: shoptypes.ShopAttributes{
			Name:           "Seoul Kitchen",
			OpenTime:       "09:00",
			CloseTime:      "21:00",
			MinOrderAmount: decimal.NewFromInt(10000),
		},
	})
	require.NoError(t, err)
	menu, err := svc.Shops.CreateMenu(ctx, shoptypes.CreateMenuInput{ShopID: shop.ID, ActorID: owner.ID, Name: "Bibimbap", Price: decimal.NewFromInt(12000)})
	require.NoError(t, err)

	order, err := svc.Orders.PlaceOrder(ctx, ordertypes.PlaceOrderInput{
		Requester: eater,
		ShopID:    shop.ID,
		MenuID:    menu.ID,
		Address:   "1 Jongno",
		Phone:     "010-0000-0000",
	})
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusPending, order.Status)

	_, err = svc.Reviews.CreateReview(ctx, reviewtypes.CreateReviewInput{OrderID: order.ID, ReviewerID: eater.ID, Rating: 5, Content: "great"})
	require.ErrorIs(t, err, reviewdomain.ErrNotEligible)

	for _, status := range []string{"ACCEPTED", "IN_PROGRESS", "COMPLETED"} {
		_, err = svc.Orders.ChangeStatus(ctx, ordertypes.ChangeStatusInput{OrderID: order.ID, Status: status, ActorID: owner.ID})
		require.NoError(t, err)
	}

	review, err := svc.Reviews.CreateReview(ctx, reviewtypes.CreateReviewInput{OrderID: order.ID, ReviewerID: eater.ID, Rating: 5, Content: "great"})
	require.NoError(t, err)
	require.Equal(t, shop.ID, review.ShopID)

	reviews, err := svc.Reviews.ListShopReviews(ctx, reviewtypes.ListShopReviewsInput{ShopID: shop.ID})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
}

func TestServicesRecordDecoratorCounters(t *testing.T) {
	ctx := context.Background()
	instruments := platformobservability.NewInMemory(nil)
	svc := NewServices(MemoryStores(), Settings{
		JWTSecret:  "0123456789abcdef",
		OwnerToken: "owner-secret",
		Location:   time.UTC,
		Clock:      func() time.Time { return time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC) },
		BcryptCost: bcrypt.MinCost,
	}, instruments)

	ownerUser, err := svc.Users.Signup(ctx, usertypes.SignupInput{Email: "owner@example.com", Password: "abcd123!", Owner: true, OwnerToken: "owner-secret"})
	require.NoError(t, err)
	owner := identity.Principal{ID: ownerUser.ID, Role: ownerUser.Role}
	shop, err := svc.Shops.CreateShop(ctx, shoptypes.CreateShopInput{
		Requester: owner,
		ShopAttributes: shoptypes.ShopAttributes{
			Name:           "Seoul Kitchen",
			OpenTime:       "09:00",
			CloseTime:      "21:00",
			MinOrderAmount: decimal.NewFromInt(10000),
		},
	})
	require.NoError(t, err)

	_, err = svc.Orders.PlaceOrder(ctx, ordertypes.PlaceOrderInput{
		Requester: identity.Principal{ID: 99, Role: identity.RoleUser},
		ShopID:    shop.ID,
		MenuID:    1,
	})
	require.ErrorIs(t, err, sharederrors.KindShopClosed)

	require.NoError(t, svc.Users.Withdraw(ctx, usertypes.WithdrawInput{Requester: owner, UserID: ownerUser.ID, Password: "abcd123!"}))

	totals, err := instruments.CounterTotals(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), totals["users.service.signups"])
	require.Equal(t, int64(1), totals["shops.service.shops_opened"])
	require.Equal(t, int64(1), totals["orders.service.rejections"])
	require.Equal(t, int64(1), totals["users.service.withdrawals"])
}

package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/memory"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

var (
	owner    = identity.Principal{ID: 10, Role: identity.RoleOwner}
	stranger = identity.Principal{ID: 11, Role: identity.RoleOwner}
	customer = identity.Principal{ID: 20, Role: identity.RoleUser}
)

func newService() *Service {
	return NewService(memory.NewShopRepository(), memory.NewMenuRepository(), nil)
}

func attrs(name string) types.ShopAttributes {
	return types.ShopAttributes{
		Name:           name,
		OpenTime:       "09:00",
		CloseTime:      "21:00",
		MinOrderAmount: decimal.NewFromInt(10000),
	}
}

func createShop(t *testing.T, svc *Service, name string) *domain.Shop {
	t.Helper()
	shop, err := svc.CreateShop(context.Background(), types.CreateShopInput{Requester: owner, ShopAttributes: attrs(name)})
	require.NoError(t, err)
	return shop
}

func TestCreateShopRequiresOwnerRole(t *testing.T) {
	svc := newService()

	_, err := svc.CreateShop(context.Background(), types.CreateShopInput{Requester: customer, ShopAttributes: attrs("x")})
	require.ErrorIs(t, err, domain.ErrOwnerRoleRequired)
	require.ErrorIs(t, err, sharederrors.KindForbiddenRole)
}

func TestCreateShopValidatesInput(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	bad := attrs("x")
	bad.OpenTime = "9am"
	_, err := svc.CreateShop(ctx, types.CreateShopInput{Requester: owner, ShopAttributes: bad})
	require.ErrorIs(t, err, ErrInvalidInput)

	bad = attrs("x")
	bad.MinOrderAmount = decimal.Zero
	_, err = svc.CreateShop(ctx, types.CreateShopInput{Requester: owner, ShopAttributes: bad})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidMinimum)
}

func TestCreateShopEnforcesOpenShopCap(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first := createShop(t, svc, "one")
	createShop(t, svc, "two")
	createShop(t, svc, "three")

	_, err := svc.CreateShop(ctx, types.CreateShopInput{Requester: owner, ShopAttributes: attrs("four")})
	require.ErrorIs(t, err, domain.ErrShopLimitReached)
	require.ErrorIs(t, err, sharederrors.KindLimitExceeded)

	_, err = svc.CloseShop(ctx, first.ID, owner.ID)
	require.NoError(t, err)
	_, err = svc.CreateShop(ctx, types.CreateShopInput{Requester: owner, ShopAttributes: attrs("four")})
	require.NoError(t, err)
}

func TestUpdateAndCloseShopRequireOwnership(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	shop := createShop(t, svc, "Corner")

	_, err := svc.UpdateShop(ctx, types.UpdateShopInput{ShopID: shop.ID, ActorID: stranger.ID, ShopAttributes: attrs("Mine")})
	require.ErrorIs(t, err, domain.ErrNotShopOwner)
	_, err = svc.CloseShop(ctx, shop.ID, stranger.ID)
	require.ErrorIs(t, err, domain.ErrNotShopOwner)

	updated, err := svc.UpdateShop(ctx, types.UpdateShopInput{ShopID: shop.ID, ActorID: owner.ID, ShopAttributes: attrs("Corner 2")})
	require.NoError(t, err)
	require.Equal(t, "Corner 2", updated.Name)

	closed, err := svc.CloseShop(ctx, shop.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, closed.Closed)

	_, err = svc.CloseShop(ctx, shop.ID, owner.ID)
	require.ErrorIs(t, err, domain.ErrShopAlreadyClosed)
	_, err = svc.UpdateShop(ctx, types.UpdateShopInput{ShopID: shop.ID, ActorID: owner.ID, ShopAttributes: attrs("Again")})
	require.ErrorIs(t, err, domain.ErrShopAlreadyClosed)

	_, err = svc.CloseShop(ctx, 999, owner.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMenuManagement(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	shop := createShop(t, svc, "Corner")
	other := createShop(t, svc, "Other")

	menu, err := svc.CreateMenu(ctx, types.CreateMenuInput{ShopID: shop.ID, ActorID: owner.ID, Name: "Ramen", Price: decimal.NewFromInt(7000)})
	require.NoError(t, err)
	require.Equal(t, domain.MenuStatusActive, menu.Status)

	_, err = svc.CreateMenu(ctx, types.CreateMenuInput{ShopID: shop.ID, ActorID: stranger.ID, Name: "Ramen", Price: decimal.NewFromInt(7000)})
	require.ErrorIs(t, err, domain.ErrNotShopOwner)

	_, err = svc.UpdateMenu(ctx, types.UpdateMenuInput{ShopID: other.ID, MenuID: menu.ID, ActorID: owner.ID, Name: "x", Price: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ports.ErrMenuNotFound)

	updated, err := svc.UpdateMenu(ctx, types.UpdateMenuInput{ShopID: shop.ID, MenuID: menu.ID, ActorID: owner.ID, Name: "Cheese Ramen", Price: decimal.NewFromInt(8000)})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(decimal.NewFromInt(8000)))

	details, err := svc.GetShop(ctx, shop.ID)
	require.NoError(t, err)
	require.Len(t, details.Menus, 1)

	deleted, err := svc.DeleteMenu(ctx, types.DeleteMenuInput{ShopID: shop.ID, MenuID: menu.ID, ActorID: owner.ID})
	require.NoError(t, err)
	require.Equal(t, domain.MenuStatusDeleted, deleted.Status)

	details, err = svc.GetShop(ctx, shop.ID)
	require.NoError(t, err)
	require.Empty(t, details.Menus)

	_, err = svc.DeleteMenu(ctx, types.DeleteMenuInput{ShopID: shop.ID, MenuID: menu.ID, ActorID: owner.ID})
	require.ErrorIs(t, err, ports.ErrMenuNotFound)
}

func TestSearchShops(t *testing.T) {
	svc := newService()
	createShop(t, svc, "Seoul Chicken")
	createShop(t, svc, "Busan Fish")

	found, err := svc.SearchShops(context.Background(), " chick ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Seoul Chicken", found[0].Name)

	all, err := svc.SearchShops(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

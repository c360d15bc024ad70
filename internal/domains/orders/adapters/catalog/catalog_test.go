package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/memory"
	shopdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/timeofday"
)

func TestCatalogTranslatesShopsAndMenus(t *testing.T) {
	ctx := context.Background()
	shops := memory.NewShopRepository()
	menus := memory.NewMenuRepository()
	catalog := New(shops, menus)

	hours := timeofday.Window{Open: timeofday.MustParse("10:00"), Close: timeofday.MustParse("20:00")}
	shop, err := shopdomain.NewShop(3, "Dumplings", hours, decimal.NewFromInt(9000))
	require.NoError(t, err)
	shop, err = shops.Save(ctx, shop)
	require.NoError(t, err)
	other, err := shopdomain.NewShop(3, "Other", hours, decimal.NewFromInt(1))
	require.NoError(t, err)
	other, err = shops.Save(ctx, other)
	require.NoError(t, err)

	menu, err := shopdomain.NewMenu(shop.ID, "Mandu", decimal.RequireFromString("9000.00"))
	require.NoError(t, err)
	menu, err = menus.Save(ctx, menu)
	require.NoError(t, err)

	view, err := catalog.FindShop(ctx, shop.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), view.OwnerID())
	require.Equal(t, hours, view.Hours)
	require.True(t, view.MinOrderAmount.Equal(decimal.NewFromInt(9000)))

	_, err = catalog.FindShop(ctx, 999)
	require.ErrorIs(t, err, orderports.ErrShopNotFound)

	menuView, err := catalog.FindMenu(ctx, shop.ID, menu.ID)
	require.NoError(t, err)
	require.Equal(t, "Mandu", menuView.Name)

	_, err = catalog.FindMenu(ctx, other.ID, menu.ID)
	require.ErrorIs(t, err, orderports.ErrMenuNotFound)

	require.NoError(t, menu.Delete())
	_, err = menus.Save(ctx, menu)
	require.NoError(t, err)
	_, err = catalog.FindMenu(ctx, shop.ID, menu.ID)
	require.ErrorIs(t, err, orderports.ErrMenuNotFound)
}

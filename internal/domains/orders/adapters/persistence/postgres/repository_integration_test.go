//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/postgres/pgtest"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
)

func newPendingOrder(t *testing.T, userID, shopID int64) *domain.Order {
	t.Helper()
	price := decimal.RequireFromString("12000.50")
	order, err := domain.NewOrder(userID,
		domain.ShopView{ID: shopID, Owner: 99},
		domain.MenuView{ID: 7, ShopID: shopID, Name: "Tteokbokki", Price: &price},
		"1 Main St", "010-1234-5678")
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newPendingOrder(t, 1, 10))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, fetched.Status)
	assert.Equal(t, "Tteokbokki", fetched.Menu.Name())
	assert.True(t, fetched.Menu.Price().Equal(decimal.RequireFromString("12000.50")))

	_, err = repo.GetByID(ctx, saved.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SaveUpdatesOnlyStatus(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newPendingOrder(t, 1, 10))
	require.NoError(t, err)

	require.NoError(t, saved.ChangeStatus(domain.StatusAccepted))
	saved.Address = "tampered"
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	assert.Equal(t, "1 Main St", updated.Address)
}

func TestRepository_ListByShopFiltersStatus(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Save(ctx, newPendingOrder(t, int64(i+1), 10))
		require.NoError(t, err)
	}
	other, err := repo.Save(ctx, newPendingOrder(t, 1, 11))
	require.NoError(t, err)
	require.NoError(t, other.ChangeStatus(domain.StatusAccepted))
	_, err = repo.Save(ctx, other)
	require.NoError(t, err)

	all, err := repo.ListByShop(ctx, 10, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[2].ID)

	accepted, err := repo.ListByShop(ctx, 11, []domain.Status{domain.StatusAccepted, domain.StatusCompleted})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)

	none, err := repo.ListByShop(ctx, 10, []domain.Status{domain.StatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, none)

	mine, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestRepository_ConcurrentStatusChangesSerialize(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	tx := transaction.NewGormManager(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newPendingOrder(t, 1, 10))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.Do(ctx, func(ctx context.Context) error {
				order, err := repo.GetForUpdate(ctx, saved.ID)
				if err != nil {
					return err
				}
				if err := order.ChangeStatus(domain.StatusAccepted); err != nil {
					return err
				}
				_, err = repo.Save(ctx, order)
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			var transitionErr *domain.TransitionError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &transitionErr):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
	assert.Equal(t, 4, rejected)
}

func TestIdempotencyStore_SaveAndConflict(t *testing.T) {
	db := pgtest.Start(t)
	store := NewIdempotencyStore(db)
	ctx := context.Background()

	missing, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", UserID: 1, RequestHash: "h1", OrderID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.OrderID)

	again, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", UserID: 1, RequestHash: "h1", OrderID: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(5), again.OrderID)

	conflict, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", UserID: 1, RequestHash: "h2", OrderID: 7})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.Equal(t, int64(5), conflict.OrderID)
}

// Package bootstrap assembles the bounded-context services shared by the API process,
// the Temporal worker and the contract tests.
package bootstrap

import (
	"gorm.io/gorm"

	ordermemory "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	reviewmemory "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/memory"
	reviewpostgres "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/persistence/postgres"
	reviewports "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	shopmemory "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/memory"
	shoppostgres "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/persistence/postgres"
	shopports "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
	usermemory "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
)

// Stores is the persistence side of every context plus the transaction manager they share.
type Stores struct {
	Users       userports.Repository
	Sessions    userports.SessionStore
	Shops       shopports.ShopRepository
	Menus       shopports.MenuRepository
	Orders      orderports.Repository
	Idempotency orderports.IdempotencyStore
	Reviews     reviewports.Repository
	Tx          transaction.Manager
}

// MemoryStores backs every context with in-process maps. Data is lost on restart.
func MemoryStores() Stores {
	return Stores{
		Users:       usermemory.NewRepository(),
		Sessions:    usermemory.NewSessionStore(),
		Shops:       shopmemory.NewShopRepository(),
		Menus:       shopmemory.NewMenuRepository(),
		Orders:      ordermemory.NewRepository(),
		Idempotency: ordermemory.NewIdempotencyStore(),
		Reviews:     reviewmemory.NewRepository(),
		Tx:          transaction.NewLocalManager(),
	}
}

// PostgresStores expects a migrated database. Caller owns the DB lifecycle.
func PostgresStores(db *gorm.DB) Stores {
	return Stores{
		Users:       userpostgres.NewRepository(db),
		Sessions:    userpostgres.NewSessionStore(db),
		Shops:       shoppostgres.NewShopRepository(db),
		Menus:       shoppostgres.NewMenuRepository(db),
		Orders:      orderpostgres.NewRepository(db),
		Idempotency: orderpostgres.NewIdempotencyStore(db),
		Reviews:     reviewpostgres.NewRepository(db),
		Tx:          transaction.NewGormManager(db),
	}
}

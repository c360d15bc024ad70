package bootstrap

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	ordercatalog "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/catalog"
	orderobs "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	reviewdirectory "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/directory"
	reviewobs "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/observability"
	reviewapp "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application"
	reviewports "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	shopobs "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/observability"
	shopapp "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application"
	shopports "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
	userauth "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/auth"
	userobs "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/go-gin-delivery-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	platformobservability "github.com/Apurer/go-gin-delivery-api/internal/platform/observability"
)

// Settings are the business knobs of the services.
type Settings struct {
	JWTSecret  string
	JWTTTL     time.Duration
	OwnerToken string
	// Location is where shop opening hours are evaluated.
	Location *time.Location
	// Clock overrides time.Now for business-hours checks and review timestamps. Tokens
	// and sessions always use the wall clock.
	Clock func() time.Time
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Services are the decorated application services of every context.
type Services struct {
	Users   userports.Service
	Shops   shopports.Service
	Orders  orderports.Service
	Reviews reviewports.Service
}

// NewServices wires the application services over stores. With nil instruments the
// decorators trace and log to no-op sinks.
func NewServices(stores Stores, settings Settings, instruments *platformobservability.Instruments) Services {
	cost := settings.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	issuer := userauth.NewJWTIssuer(settings.JWTSecret, settings.JWTTTL)
	coreUsers := userapp.NewService(stores.Users, stores.Sessions, issuer, userauth.BcryptHasher{Cost: cost},
		userapp.WithOwnerToken(settings.OwnerToken),
		userapp.WithTransactions(stores.Tx),
	)

	coreShops := shopapp.NewService(stores.Shops, stores.Menus, stores.Tx)

	catalog := ordercatalog.New(stores.Shops, stores.Menus)
	coreOrders := orderapp.NewService(stores.Orders, catalog, catalog, stores.Tx,
		orderapp.WithClock(settings.Clock),
		orderapp.WithLocation(settings.Location),
		orderapp.WithIdempotencyStore(stores.Idempotency),
	)

	coreReviews := reviewapp.NewService(stores.Reviews,
		reviewdirectory.NewOrders(stores.Orders),
		reviewdirectory.NewShops(stores.Shops),
		stores.Tx,
		reviewapp.WithClock(settings.Clock),
	)

	if instruments == nil {
		return Services{
			Users:   userobs.New(coreUsers),
			Shops:   shopobs.New(coreShops),
			Orders:  orderobs.New(coreOrders),
			Reviews: reviewobs.New(coreReviews),
		}
	}
	logger := instruments.Logger
	return Services{
		Users: userobs.New(coreUsers,
			userobs.WithLogger(logger),
			userobs.WithTracer(instruments.Tracer("internal.users.application")),
			userobs.WithMeter(instruments.Meter("internal.users.application")),
		),
		Shops: shopobs.New(coreShops,
			shopobs.WithLogger(logger),
			shopobs.WithTracer(instruments.Tracer("internal.shops.application")),
			shopobs.WithMeter(instruments.Meter("internal.shops.application")),
		),
		Orders: orderobs.New(coreOrders,
			orderobs.WithLogger(logger),
			orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
			orderobs.WithMeter(instruments.Meter("internal.orders.application")),
		),
		Reviews: reviewobs.New(coreReviews,
			reviewobs.WithLogger(logger),
			reviewobs.WithTracer(instruments.Tracer("internal.reviews.application")),
			reviewobs.WithMeter(instruments.Meter("internal.reviews.application")),
		),
	}
}

package application

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

var _ ports.Service = (*Service)(nil)

// errReplayed aborts a unit of work whose idempotency key was claimed concurrently.
var errReplayed = errors.New("idempotent request replayed")

// Service orchestrates order placement and the order lifecycle.
type Service struct {
	repo        ports.Repository
	shops       ports.ShopDirectory
	menus       ports.MenuCatalog
	tx          transaction.Manager
	idempotency ports.IdempotencyStore
	clock       func() time.Time
	location    *time.Location
}

// Option customizes the service.
type Option func(*Service)

// WithClock overrides the time source used for business-hours checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithLocation evaluates shop hours in loc instead of the clock's own location.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithIdempotencyStore enables Idempotency-Key handling on PlaceOrder.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(repo ports.Repository, shops ports.ShopDirectory, menus ports.MenuCatalog, tx transaction.Manager, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		shops: shops,
		menus: menus,
		tx:    tx,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = transaction.NewLocalManager()
	}
	return s
}

// PlaceOrder validates the request against the shop and menu, then stores a PENDING order.
// Checks run in a fixed order and stop at the first failure.
func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		var placed *domain.Order
		err := s.tx.Do(ctx, func(ctx context.Context) error {
			var err error
			placed, err = s.placeOrder(ctx, input)
			return err
		})
		if err != nil {
			return nil, err
		}
		return placed, nil
	}

	hash, err := FingerprintPlaceOrder(input)
	if err != nil {
		return nil, err
	}
	// Keys are chosen by clients, so they are only unique per customer.
	key = strconv.FormatInt(input.Requester.ID, 10) + ":" + key
	var (
		placed     *domain.Order
		replayedID int64
	)
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.RequestHash != hash || existing.UserID != input.Requester.ID {
				return ports.ErrIdempotencyConflict
			}
			placed, err = s.repo.GetByID(ctx, existing.OrderID)
			return err
		}
		placed, err = s.placeOrder(ctx, input)
		if err != nil {
			return err
		}
		saved, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         key,
			UserID:      input.Requester.ID,
			RequestHash: hash,
			OrderID:     placed.ID,
		})
		if err != nil {
			return err
		}
		if saved.OrderID != placed.ID {
			replayedID = saved.OrderID
			return errReplayed
		}
		return nil
	})
	if errors.Is(err, errReplayed) {
		return s.repo.GetByID(ctx, replayedID)
	}
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *Service) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if input.Requester.IsOwner() {
		return nil, domain.ErrForbiddenRole
	}
	if input.ShopID <= 0 {
		return nil, ports.ErrShopNotFound
	}
	shop, err := s.shops.FindShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !shop.OpenAt(s.now()) {
		return nil, domain.ErrShopClosed
	}
	if input.MenuID <= 0 {
		return nil, ports.ErrMenuNotFound
	}
	menu, err := s.menus.FindMenu(ctx, shop.ID, input.MenuID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckMinimum(menu.Price, shop.MinOrderAmount); err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(input.Requester.ID, *shop, *menu, input.Address, input.Phone)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

// ChangeStatus moves an order along its lifecycle on behalf of the shop owner.
// The order row stays locked from read to write.
func (s *Service) ChangeStatus(ctx context.Context, input ordertypes.ChangeStatusInput) (*domain.Order, error) {
	var updated *domain.Order
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		shop, err := s.shops.FindShop(ctx, order.ShopID)
		if err != nil {
			return err
		}
		if !identity.IsOwnerOf(shop, input.ActorID) {
			return domain.ErrNotShopOwner
		}
		target, err := domain.ParseStatus(input.Status)
		if err != nil {
			return mapError(err)
		}
		if err := order.ChangeStatus(target); err != nil {
			return err
		}
		updated, err = s.repo.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetOrder returns an order to its customer or to the owner of its shop.
func (s *Service) GetOrder(ctx context.Context, input ordertypes.GetOrderInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if identity.IsOwnerOf(order, input.ActorID) {
		return order, nil
	}
	shop, err := s.shops.FindShop(ctx, order.ShopID)
	if err != nil {
		return nil, err
	}
	if !identity.IsOwnerOf(shop, input.ActorID) {
		return nil, domain.ErrNotParticipant
	}
	return order, nil
}

func (s *Service) ListShopOrders(ctx context.Context, input ordertypes.ListShopOrdersInput) ([]*domain.Order, error) {
	shop, err := s.shops.FindShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !identity.IsOwnerOf(shop, input.ActorID) {
		return nil, domain.ErrNotShopOwner
	}
	statuses, err := domain.ParseStatuses(input.Statuses)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.ListByShop(ctx, shop.ID, statuses)
}

func (s *Service) ListUserOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) now() time.Time {
	now := s.clock()
	if s.location != nil {
		now = now.In(s.location)
	}
	return now
}

package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, now: time.Now}
}

// WithClock overrides the timestamp source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save assigns an ID and creation time to new orders. Existing orders only take the new status.
func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if order.ID == 0 {
		clone := *order
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
		clone.UpdatedAt = now
		r.orders[clone.ID] = &clone
		saved := clone
		return &saved, nil
	}
	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.Status = order.Status
	stored.UpdatedAt = now
	saved := *stored
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

// GetForUpdate relies on the caller's transaction manager for serialization.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *Repository) ListByShop(_ context.Context, shopID int64, statuses []domain.Status) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool {
		return o.ShopID == shopID && (len(statuses) == 0 || slices.Contains(statuses, o.Status))
	}), nil
}

func (r *Repository) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (r *Repository) filter(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if !keep(order) {
			continue
		}
		clone := *order
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

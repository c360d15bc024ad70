package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
)

var (
	_ ports.ShopRepository = (*ShopRepository)(nil)
	_ ports.MenuRepository = (*MenuRepository)(nil)
)

// ShopRepository is an in-memory shop persistence adapter.
type ShopRepository struct {
	mu     sync.RWMutex
	shops  map[int64]*domain.Shop
	nextID int64
}

func NewShopRepository() *ShopRepository {
	return &ShopRepository{shops: map[int64]*domain.Shop{}}
}

func (r *ShopRepository) Save(_ context.Context, shop *domain.Shop) (*domain.Shop, error) {
	if shop == nil {
		return nil, errors.New("shop is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	clone := *shop
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	} else if existing, ok := r.shops[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else {
		return nil, ports.ErrNotFound
	}
	clone.UpdatedAt = now
	r.shops[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *ShopRepository) GetByID(_ context.Context, id int64) (*domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shop, ok := r.shops[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *shop
	return &clone, nil
}

func (r *ShopRepository) CountOpenByOwner(_ context.Context, ownerID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, shop := range r.shops {
		if shop.Owner == ownerID && !shop.Closed {
			count++
		}
	}
	return count, nil
}

func (r *ShopRepository) SearchByName(_ context.Context, name string) ([]*domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(name)
	result := make([]*domain.Shop, 0, len(r.shops))
	for _, shop := range r.shops {
		if strings.Contains(strings.ToLower(shop.Name), needle) {
			clone := *shop
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MenuRepository is an in-memory menu persistence adapter.
type MenuRepository struct {
	mu     sync.RWMutex
	menus  map[int64]*domain.Menu
	nextID int64
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{menus: map[int64]*domain.Menu{}}
}

func (r *MenuRepository) Save(_ context.Context, menu *domain.Menu) (*domain.Menu, error) {
	if menu == nil {
		return nil, errors.New("menu is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	clone := *menu
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	} else if existing, ok := r.menus[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else {
		return nil, ports.ErrMenuNotFound
	}
	clone.UpdatedAt = now
	r.menus[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *MenuRepository) GetByID(_ context.Context, id int64) (*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	menu, ok := r.menus[id]
	if !ok {
		return nil, ports.ErrMenuNotFound
	}
	clone := *menu
	return &clone, nil
}

func (r *MenuRepository) ListActiveByShop(_ context.Context, shopID int64) ([]*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Menu, 0)
	for _, menu := range r.menus {
		if menu.ShopID == shopID && menu.Active() {
			clone := *menu
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

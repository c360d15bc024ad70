package application

import (
	"context"
	"strings"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/timeofday"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates shop and menu management for owners.
type Service struct {
	shops ports.ShopRepository
	menus ports.MenuRepository
	tx    transaction.Manager
}

func NewService(shops ports.ShopRepository, menus ports.MenuRepository, tx transaction.Manager) *Service {
	if tx == nil {
		tx = transaction.NewLocalManager()
	}
	return &Service{shops: shops, menus: menus, tx: tx}
}

// CreateShop opens a shop for an owner who is below the open-shop cap.
func (s *Service) CreateShop(ctx context.Context, input types.CreateShopInput) (*domain.Shop, error) {
	if !input.Requester.IsOwner() {
		return nil, domain.ErrOwnerRoleRequired
	}
	hours, err := parseHours(input.ShopAttributes)
	if err != nil {
		return nil, mapError(err)
	}
	shop, err := domain.NewShop(input.Requester.ID, input.Name, hours, input.MinOrderAmount)
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.Shop
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		open, err := s.shops.CountOpenByOwner(ctx, input.Requester.ID)
		if err != nil {
			return err
		}
		if err := domain.CheckOpenShopLimit(open); err != nil {
			return err
		}
		created, err = s.shops.Save(ctx, shop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) UpdateShop(ctx context.Context, input types.UpdateShopInput) (*domain.Shop, error) {
	hours, err := parseHours(input.ShopAttributes)
	if err != nil {
		return nil, mapError(err)
	}
	var updated *domain.Shop
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		shop, err := s.ownedShop(ctx, input.ShopID, input.ActorID)
		if err != nil {
			return err
		}
		if shop.Closed {
			return domain.ErrShopAlreadyClosed
		}
		if err := shop.Update(input.Name, hours, input.MinOrderAmount); err != nil {
			return mapError(err)
		}
		updated, err = s.shops.Save(ctx, shop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CloseShop is a soft close; the shop stops counting toward the owner's cap.
func (s *Service) CloseShop(ctx context.Context, shopID, actorID int64) (*domain.Shop, error) {
	var closed *domain.Shop
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		shop, err := s.ownedShop(ctx, shopID, actorID)
		if err != nil {
			return err
		}
		if err := shop.Close(); err != nil {
			return err
		}
		closed, err = s.shops.Save(ctx, shop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *Service) GetShop(ctx context.Context, shopID int64) (*types.ShopDetails, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	menus, err := s.menus.ListActiveByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	return &types.ShopDetails{Shop: shop, Menus: menus}, nil
}

// SearchShops matches names case-insensitively; an empty query lists every shop.
func (s *Service) SearchShops(ctx context.Context, name string) ([]*domain.Shop, error) {
	return s.shops.SearchByName(ctx, strings.TrimSpace(name))
}

func (s *Service) CreateMenu(ctx context.Context, input types.CreateMenuInput) (*domain.Menu, error) {
	var created *domain.Menu
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		shop, err := s.ownedShop(ctx, input.ShopID, input.ActorID)
		if err != nil {
			return err
		}
		menu, err := domain.NewMenu(shop.ID, input.Name, input.Price)
		if err != nil {
			return mapError(err)
		}
		created, err = s.menus.Save(ctx, menu)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) UpdateMenu(ctx context.Context, input types.UpdateMenuInput) (*domain.Menu, error) {
	var updated *domain.Menu
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		menu, err := s.ownedMenu(ctx, input.ShopID, input.MenuID, input.ActorID)
		if err != nil {
			return err
		}
		if err := menu.Update(input.Name, input.Price); err != nil {
			return mapError(err)
		}
		updated, err = s.menus.Save(ctx, menu)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteMenu(ctx context.Context, input types.DeleteMenuInput) (*domain.Menu, error) {
	var deleted *domain.Menu
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		menu, err := s.ownedMenu(ctx, input.ShopID, input.MenuID, input.ActorID)
		if err != nil {
			return err
		}
		if err := menu.Delete(); err != nil {
			return err
		}
		deleted, err = s.menus.Save(ctx, menu)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *Service) ownedShop(ctx context.Context, shopID, actorID int64) (*domain.Shop, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !identity.IsOwnerOf(shop, actorID) {
		return nil, domain.ErrNotShopOwner
	}
	return shop, nil
}

// ownedMenu resolves a live menu of a shop the actor owns. Menus of other shops are
// reported as missing.
func (s *Service) ownedMenu(ctx context.Context, shopID, menuID, actorID int64) (*domain.Menu, error) {
	shop, err := s.ownedShop(ctx, shopID, actorID)
	if err != nil {
		return nil, err
	}
	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu.ShopID != shop.ID || !menu.Active() {
		return nil, ports.ErrMenuNotFound
	}
	return menu, nil
}

func parseHours(attrs types.ShopAttributes) (timeofday.Window, error) {
	open, err := timeofday.Parse(attrs.OpenTime)
	if err != nil {
		return timeofday.Window{}, err
	}
	closing, err := timeofday.Parse(attrs.CloseTime)
	if err != nil {
		return timeofday.Window{}, err
	}
	return timeofday.Window{Open: open, Close: closing}, nil
}

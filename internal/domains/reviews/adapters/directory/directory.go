// Package directory reads orders and shops on behalf of the reviews context.
package directory

import (
	"context"
	"errors"

	orderdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	reviewdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	reviewports "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	shopports "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
)

var (
	_ reviewports.OrderReader   = (*Orders)(nil)
	_ reviewports.ShopDirectory = (*Shops)(nil)
)

// Orders locks the reviewed order for the rest of the transaction.
type Orders struct {
	repo orderports.Repository
}

func NewOrders(repo orderports.Repository) *Orders {
	return &Orders{repo: repo}
}

func (o *Orders) FindOrder(ctx context.Context, orderID int64) (*reviewdomain.OrderView, error) {
	order, err := o.repo.GetForUpdate(ctx, orderID)
	if errors.Is(err, orderports.ErrNotFound) {
		return nil, reviewports.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reviewdomain.OrderView{
		ID:        order.ID,
		Customer:  order.UserID,
		ShopID:    order.ShopID,
		Completed: order.Status == orderdomain.StatusCompleted,
	}, nil
}

type Shops struct {
	repo shopports.ShopRepository
}

func NewShops(repo shopports.ShopRepository) *Shops {
	return &Shops{repo: repo}
}

func (s *Shops) ShopExists(ctx context.Context, shopID int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, shopID)
	if errors.Is(err, shopports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

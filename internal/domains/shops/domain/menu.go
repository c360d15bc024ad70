package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type MenuStatus string

const (
	MenuStatusActive  MenuStatus = "active"
	MenuStatusDeleted MenuStatus = "deleted"
)

// Menu is an item a shop sells. Deleted menus are kept for order history but cannot be ordered.
type Menu struct {
	ID        int64
	ShopID    int64
	Name      string
	Price     decimal.Decimal
	Status    MenuStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewMenu(shopID int64, name string, price decimal.Decimal) (*Menu, error) {
	menu := &Menu{ShopID: shopID, Status: MenuStatusActive}
	if err := menu.Update(name, price); err != nil {
		return nil, err
	}
	return menu, nil
}

func (m *Menu) Update(name string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMenuNameRequired
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	m.Name = name
	m.Price = price
	return nil
}

// Delete is a soft delete.
func (m *Menu) Delete() error {
	if m.Status == MenuStatusDeleted {
		return ErrMenuAlreadyDeleted
	}
	m.Status = MenuStatusDeleted
	return nil
}

func (m *Menu) Active() bool { return m.Status != MenuStatusDeleted }

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MenuSnapshot freezes the menu name and price at ordering time. Later menu edits
// never reach an existing order.
type MenuSnapshot struct {
	name  string
	price decimal.Decimal
}

func NewMenuSnapshot(name string, price decimal.Decimal) MenuSnapshot {
	return MenuSnapshot{name: name, price: price}
}

func (s MenuSnapshot) Name() string { return s.name }

func (s MenuSnapshot) Price() decimal.Decimal { return s.price }

// Order models a customer's purchase of one menu item from one shop.
// Only Status mutates after creation, and only through ChangeStatus.
type Order struct {
	ID        int64
	UserID    int64
	ShopID    int64
	MenuID    int64
	Menu      MenuSnapshot
	Address   string
	Phone     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder builds a PENDING order from an eligible shop and menu.
func NewOrder(userID int64, shop ShopView, menu MenuView, address, phone string) (*Order, error) {
	address = strings.TrimSpace(address)
	phone = strings.TrimSpace(phone)
	if address == "" {
		return nil, ErrAddressRequired
	}
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	price := decimal.Zero
	if menu.Price != nil {
		price = *menu.Price
	}
	return &Order{
		UserID:  userID,
		ShopID:  shop.ID,
		MenuID:  menu.ID,
		Menu:    NewMenuSnapshot(menu.Name, price),
		Address: address,
		Phone:   phone,
		Status:  StatusPending,
	}, nil
}

// ChangeStatus applies a lifecycle transition or returns a *TransitionError.
func (o *Order) ChangeStatus(to Status) error {
	if err := ValidateTransition(o.Status, to); err != nil {
		return err
	}
	o.Status = to
	return nil
}

// OwnerID identifies the customer who placed the order.
func (o *Order) OwnerID() int64 { return o.UserID }

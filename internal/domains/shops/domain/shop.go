package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-delivery-api/internal/shared/timeofday"
)

// MaxOpenShopsPerOwner caps how many shops an owner may run at once. Closed shops do not count.
const MaxOpenShopsPerOwner = 3

// Shop is a storefront run by a single owner.
type Shop struct {
	ID             int64
	Owner          int64
	Name           string
	Hours          timeofday.Window
	MinOrderAmount decimal.Decimal
	Closed         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewShop(ownerID int64, name string, hours timeofday.Window, minOrderAmount decimal.Decimal) (*Shop, error) {
	shop := &Shop{Owner: ownerID}
	if err := shop.Update(name, hours, minOrderAmount); err != nil {
		return nil, err
	}
	return shop, nil
}

// Update replaces the editable attributes after validating them.
func (s *Shop) Update(name string, hours timeofday.Window, minOrderAmount decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if hours.Open == hours.Close {
		return ErrInvalidHours
	}
	if !minOrderAmount.IsPositive() {
		return ErrInvalidMinimum
	}
	s.Name = name
	s.Hours = hours
	s.MinOrderAmount = minOrderAmount
	return nil
}

// Close takes the shop out of service. It stays readable but no longer accepts orders.
func (s *Shop) Close() error {
	if s.Closed {
		return ErrShopAlreadyClosed
	}
	s.Closed = true
	return nil
}

func (s *Shop) OwnerID() int64 { return s.Owner }

// CheckOpenShopLimit rejects a new shop when the owner already runs open shops at the cap.
func CheckOpenShopLimit(open int) error {
	if open >= MaxOpenShopsPerOwner {
		return ErrShopLimitReached
	}
	return nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-delivery-api/internal/shared/timeofday"
)

// ShopView is the read-only slice of a shop the eligibility checks depend on.
type ShopView struct {
	ID             int64
	Owner          int64
	Hours          timeofday.Window
	MinOrderAmount *decimal.Decimal
	Closed         bool
}

func (s ShopView) OwnerID() int64 { return s.Owner }

// OpenAt reports whether the shop accepts orders at now. A permanently closed
// shop is never open.
func (s ShopView) OpenAt(now time.Time) bool {
	if s.Closed {
		return false
	}
	return s.Hours.Contains(timeofday.Of(now))
}

// MenuView is the read-only slice of a menu item used when ordering.
type MenuView struct {
	ID     int64
	ShopID int64
	Name   string
	Price  *decimal.Decimal
}

// CheckMinimum enforces price >= minimum using exact decimal comparison.
func CheckMinimum(price, minimum *decimal.Decimal) error {
	if price == nil || minimum == nil || price.IsNegative() || minimum.IsNegative() {
		return ErrInvalidConfiguration
	}
	if price.LessThan(*minimum) {
		return ErrMinimumNotMet
	}
	return nil
}

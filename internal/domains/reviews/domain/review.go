package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxContentLength = 100
)

// Review is a customer's rating of one completed order. ShopID is copied from the order.
type Review struct {
	ID         int64
	OrderID    int64
	UserID     int64
	ShopID     int64
	Rating     int
	Content    string
	ReviewedAt time.Time
}

// OrderView is the part of an order that decides whether it can be reviewed.
type OrderView struct {
	ID        int64
	Customer  int64
	ShopID    int64
	Completed bool
}

func (o OrderView) OwnerID() int64 { return o.Customer }

// NewReview builds a review for an order that already passed eligibility checks.
func NewReview(order OrderView, rating int, content string, reviewedAt time.Time) (*Review, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, ErrContentTooLong
	}
	return &Review{
		OrderID:    order.ID,
		UserID:     order.Customer,
		ShopID:     order.ShopID,
		Rating:     rating,
		Content:    content,
		ReviewedAt: reviewedAt,
	}, nil
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// RatingRange is an inclusive rating filter.
type RatingRange struct {
	Min int
	Max int
}

// NewRatingRange fills omitted bounds with 1 and 5, then checks each bound and their order.
func NewRatingRange(min, max *int) (RatingRange, error) {
	r := RatingRange{Min: MinRating, Max: MaxRating}
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	if err := ValidateRating(r.Min); err != nil {
		return RatingRange{}, err
	}
	if err := ValidateRating(r.Max); err != nil {
		return RatingRange{}, err
	}
	if r.Min > r.Max {
		return RatingRange{}, ErrInvalidRange
	}
	return r, nil
}

func (r RatingRange) Contains(rating int) bool {
	return rating >= r.Min && rating <= r.Max
}

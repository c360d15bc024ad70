package mapper

import (
	"time"

	reviewtypes "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	reviewdomain "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
)

// CreateReviewRequest is the body of POST /v1/orders/:orderId/reviews.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (r CreateReviewRequest) ToInput(orderID, reviewerID int64) reviewtypes.CreateReviewInput {
	return reviewtypes.CreateReviewInput{
		OrderID:    orderID,
		ReviewerID: reviewerID,
		Rating:     r.Rating,
		Content:    r.Content,
	}
}

// ListReviewsQuery binds the optional rating bounds of the listing endpoint.
type ListReviewsQuery struct {
	MinRating *int `form:"minRating"`
	MaxRating *int `form:"maxRating"`
}

type Review struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"orderId"`
	UserID     int64     `json:"userId"`
	ShopID     int64     `json:"shopId"`
	Rating     int       `json:"rating"`
	Content    string    `json:"content"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

func FromDomainReview(review *reviewdomain.Review) Review {
	if review == nil {
		return Review{}
	}
	return Review{
		ID:         review.ID,
		OrderID:    review.OrderID,
		UserID:     review.UserID,
		ShopID:     review.ShopID,
		Rating:     review.Rating,
		Content:    review.Content,
		ReviewedAt: review.ReviewedAt,
	}
}

func FromDomainReviews(reviews []*reviewdomain.Review) []Review {
	result := make([]Review, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, FromDomainReview(review))
	}
	return result
}

package types

type CreateReviewInput struct {
	OrderID    int64
	ReviewerID int64
	Rating     int
	Content    string
}

// ListShopReviewsInput leaves a bound nil to use the default of 1 or 5.
type ListShopReviewsInput struct {
	ShopID    int64
	MinRating *int
	MaxRating *int
}

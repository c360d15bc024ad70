package domain

import (
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	ErrNotReviewer     = sharederrors.New(sharederrors.KindForbidden, "only the customer who placed the order can review it")
	ErrAlreadyReviewed = sharederrors.New(sharederrors.KindAlreadyExists, "order already has a review")
	ErrNotEligible     = sharederrors.New(sharederrors.KindNotEligible, "only completed deliveries may be reviewed")

	ErrInvalidRating   = sharederrors.New(sharederrors.KindInvalidArgument, "rating must be between 1 and 5")
	ErrInvalidRange    = sharederrors.New(sharederrors.KindInvalidArgument, "minimum rating cannot exceed maximum rating")
	ErrContentRequired = sharederrors.New(sharederrors.KindInvalidArgument, "review content is required")
	ErrContentTooLong  = sharederrors.New(sharederrors.KindInvalidArgument, "review content must be at most 100 characters")

	ErrNoReviews  = sharederrors.New(sharederrors.KindNoReviews, "shop has no reviews yet")
	ErrEmptyRange = sharederrors.New(sharederrors.KindEmptyRange, "no reviews in the requested rating range")
)

package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reviewhttpmapper "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/adapters/http/mapper"
	reviewtypes "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/application/types"
	reviewports "github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
)

// ReviewAPI handles review creation and shop review listings.
type ReviewAPI struct {
	service reviewports.Service
}

func NewReviewAPI(service reviewports.Service) ReviewAPI {
	return ReviewAPI{service: service}
}

// Post /v1/orders/:orderId/reviews
func (api *ReviewAPI) CreateReview(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload reviewhttpmapper.CreateReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := api.service.CreateReview(c.Request.Context(), payload.ToInput(orderID, principalFrom(c).ID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reviewhttpmapper.FromDomainReview(review))
}

// Get /v1/shops/:shopId/reviews?minRating=&maxRating=
func (api *ReviewAPI) ListShopReviews(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	var query reviewhttpmapper.ListReviewsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	reviews, err := api.service.ListShopReviews(c.Request.Context(), reviewtypes.ListShopReviewsInput{
		ShopID:    shopID,
		MinRating: query.MinRating,
		MaxRating: query.MaxRating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviewhttpmapper.FromDomainReviews(reviews))
}

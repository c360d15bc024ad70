package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	shophttpmapper "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/adapters/http/mapper"
	shoptypes "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/application/types"
	shopports "github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
)

// ShopAPI handles shop and menu management.
type ShopAPI struct {
	service shopports.Service
}

func NewShopAPI(service shopports.Service) ShopAPI {
	return ShopAPI{service: service}
}

// Post /v1/shops
func (api *ShopAPI) CreateShop(c *gin.Context) {
	var payload shophttpmapper.ShopRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	shop, err := api.service.CreateShop(c.Request.Context(), shoptypes.CreateShopInput{
		Requester:      principalFrom(c),
		ShopAttributes: payload.Attributes(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shophttpmapper.FromDomainShop(shop))
}

// Get /v1/shops?name=
func (api *ShopAPI) SearchShops(c *gin.Context) {
	shops, err := api.service.SearchShops(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shophttpmapper.FromDomainShops(shops))
}

// Get /v1/shops/:shopId
// Returns the shop with its active menus.
func (api *ShopAPI) GetShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	details, err := api.service.GetShop(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shophttpmapper.FromShopDetails(details))
}

// Put /v1/shops/:shopId
func (api *ShopAPI) UpdateShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	var payload shophttpmapper.ShopRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	shop, err := api.service.UpdateShop(c.Request.Context(), shoptypes.UpdateShopInput{
		ShopID:         shopID,
		ActorID:        principalFrom(c).ID,
		ShopAttributes: payload.Attributes(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shophttpmapper.FromDomainShop(shop))
}

// Delete /v1/shops/:shopId
// Closes the shop; it stays readable but never accepts orders again.
func (api *ShopAPI) CloseShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	shop, err := api.service.CloseShop(c.Request.Context(), shopID, principalFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shophttpmapper.FromDomainShop(shop))
}

// Post /v1/shops/:shopId/menus
func (api *ShopAPI) CreateMenu(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	var payload shophttpmapper.MenuRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	menu, err := api.service.CreateMenu(c.Request.Context(), shoptypes.CreateMenuInput{
		ShopID:  shopID,
		ActorID: principalFrom(c).ID,
		Name:    payload.Name,
		Price:   payload.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shophttpmapper.FromDomainMenu(menu))
}

// Put /v1/shops/:shopId/menus/:menuId
func (api *ShopAPI) UpdateMenu(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	menuID, ok := parseIDParam(c, "menuId")
	if !ok {
		return
	}
	var payload shophttpmapper.MenuRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	menu, err := api.service.UpdateMenu(c.Request.Context(), shoptypes.UpdateMenuInput{
		ShopID:  shopID,
		MenuID:  menuID,
		ActorID: principalFrom(c).ID,
		Name:    payload.Name,
		Price:   payload.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shophttpmapper.FromDomainMenu(menu))
}

// Delete /v1/shops/:shopId/menus/:menuId
func (api *ShopAPI) DeleteMenu(c *gin.Context) {
	shopID, ok := parseIDParam(c, "shopId")
	if !ok {
		return
	}
	menuID, ok := parseIDParam(c, "menuId")
	if !ok {
		return
	}
	menu, err := api.service.DeleteMenu(c.Request.Context(), shoptypes.DeleteMenuInput{
		ShopID:  shopID,
		MenuID:  menuID,
		ActorID: principalFrom(c).ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shophttpmapper.FromDomainMenu(menu))
}

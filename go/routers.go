// Package deliveryserver is the gin HTTP surface of the delivery API.
package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Public routes skip AuthRequired.
	Public bool
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the per-resource handler sets.
type ApiHandleFunctions struct {
	UserAPI   UserAPI
	ShopAPI   ShopAPI
	OrderAPI  OrderAPI
	ReviewAPI ReviewAPI
}

// RouterOptions carries the cross-cutting middleware of the router.
type RouterOptions struct {
	// Authenticator resolves bearer tokens for non-public routes.
	Authenticator Authenticator
	// Middleware runs before request ID and auth handling, e.g. tracing and metrics.
	Middleware []gin.HandlerFunc
	// MetricsHandler is mounted at GET /metrics when set.
	MetricsHandler gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router.Use(gin.Recovery())
	router.Use(opts.Middleware...)
	router.Use(RequestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsHandler != nil {
		router.GET("/metrics", opts.MetricsHandler)
	}

	auth := AuthRequired(opts.Authenticator)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if !route.Public {
			handlers = append([]gin.HandlerFunc{auth}, handlers...)
		}
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Signup", http.MethodPost, "/v1/users/signup", true, handleFunctions.UserAPI.Signup},
		{"Login", http.MethodPost, "/v1/users/login", true, handleFunctions.UserAPI.Login},
		{"Logout", http.MethodPost, "/v1/users/logout", false, handleFunctions.UserAPI.Logout},
		{"ChangePassword", http.MethodPatch, "/v1/users/:userId/password", false, handleFunctions.UserAPI.ChangePassword},
		{"Withdraw", http.MethodDelete, "/v1/users/:userId", false, handleFunctions.UserAPI.Withdraw},
		{"ListMyOrders", http.MethodGet, "/v1/users/me/orders", false, handleFunctions.OrderAPI.ListMyOrders},

		{"CreateShop", http.MethodPost, "/v1/shops", false, handleFunctions.ShopAPI.CreateShop},
		{"SearchShops", http.MethodGet, "/v1/shops", true, handleFunctions.ShopAPI.SearchShops},
		{"GetShop", http.MethodGet, "/v1/shops/:shopId", true, handleFunctions.ShopAPI.GetShop},
		{"UpdateShop", http.MethodPut, "/v1/shops/:shopId", false, handleFunctions.ShopAPI.UpdateShop},
		{"CloseShop", http.MethodDelete, "/v1/shops/:shopId", false, handleFunctions.ShopAPI.CloseShop},
		{"CreateMenu", http.MethodPost, "/v1/shops/:shopId/menus", false, handleFunctions.ShopAPI.CreateMenu},
		{"UpdateMenu", http.MethodPut, "/v1/shops/:shopId/menus/:menuId", false, handleFunctions.ShopAPI.UpdateMenu},
		{"DeleteMenu", http.MethodDelete, "/v1/shops/:shopId/menus/:menuId", false, handleFunctions.ShopAPI.DeleteMenu},
		{"ListShopOrders", http.MethodGet, "/v1/shops/:shopId/orders", false, handleFunctions.OrderAPI.ListShopOrders},
		{"ListShopReviews", http.MethodGet, "/v1/shops/:shopId/reviews", true, handleFunctions.ReviewAPI.ListShopReviews},

		{"PlaceOrder", http.MethodPost, "/v1/orders", false, handleFunctions.OrderAPI.PlaceOrder},
		{"GetOrder", http.MethodGet, "/v1/orders/:orderId", false, handleFunctions.OrderAPI.GetOrder},
		{"ChangeOrderStatus", http.MethodPatch, "/v1/orders/:orderId/status", false, handleFunctions.OrderAPI.ChangeStatus},
		{"CreateReview", http.MethodPost, "/v1/orders/:orderId/reviews", false, handleFunctions.ReviewAPI.CreateReview},
	}
}

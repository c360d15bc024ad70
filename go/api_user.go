package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
)

// UserAPI handles signup, session and account endpoints.
type UserAPI struct {
	service userports.Service
}

func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /v1/users/signup
func (api *UserAPI) Signup(c *gin.Context) {
	var payload userhttpmapper.SignupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := api.service.Signup(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(user))
}

// Post /v1/users/login
func (api *UserAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromSession(session))
}

// Post /v1/users/logout
// Ends every session of the caller.
func (api *UserAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), principalFrom(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Patch /v1/users/{userId}/password
func (api *UserAPI) ChangePassword(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload userhttpmapper.ChangePasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	if err := api.service.ChangePassword(c.Request.Context(), payload.ToInput(principalFrom(c), userID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /v1/users/{userId}
// Closes the account and ends all of its sessions.
func (api *UserAPI) Withdraw(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload userhttpmapper.WithdrawRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	if err := api.service.Withdraw(c.Request.Context(), payload.ToInput(principalFrom(c), userID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package deliveryserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

const principalKey = "principal"

// Authenticator resolves an access token to the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Principal, error)
}

// RequestID keeps a caller-supplied request ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AuthRequired rejects requests without a valid bearer token and stores the principal
// on both the gin context and the request context.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication is not configured"))
			c.Abort()
			return
		}
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		principal, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(identity.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// principalFrom returns the caller set by AuthRequired.
func principalFrom(c *gin.Context) identity.Principal {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(identity.Principal); ok {
			return principal
		}
	}
	principal, _ := identity.FromContext(c.Request.Context())
	return principal
}

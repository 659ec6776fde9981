package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/erp/erpapp/internal/domain/identity"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/logger"
	"github.com/erp/erpapp/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthUserKey   = "auth_user"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

const unauthorizedMessage = "Could not validate credentials"

// Authenticator resolves a raw bearer token to an active user. It returns
// shared.ErrUnauthorized for bad tokens and unknown or inactive users; any
// other error is a server failure.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.User, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token. The
// resolved user is stored under AuthUserKey.
func JWTAuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(AuthHeaderKey))
		if !ok {
			abortUnauthorized(c)
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if errors.Is(err, shared.ErrUnauthorized) {
			abortUnauthorized(c)
			return
		}
		if err != nil {
			logger.L(c.Request.Context()).Error("Authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal,
				"An unexpected error occurred",
				GetRequestID(c),
			))
			return
		}

		c.Set(AuthUserKey, user)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware
func CurrentUser(c *gin.Context) (*identity.User, bool) {
	v, ok := c.Get(AuthUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*identity.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized,
		unauthorizedMessage,
		GetRequestID(c),
	))
}

package handler

import (
	identityapp "github.com/erp/erpapp/internal/application/identity"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves /api/auth
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}
	h.OK(c, h.authService.Me(user))
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	token, err := h.authService.Refresh(c.Request.Context(), user)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, token)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the client
// simply discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.OK(c, identityapp.MessageResponse{Message: "Successfully logged out"})
}

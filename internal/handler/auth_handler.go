package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carprice/internal/middleware"
	"carprice/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	token, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}

// Refresh handles POST /api/auth/refresh. It requires a valid token and
// keeps the caller's session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	token, err := h.authService.Refresh(c.Request.Context(), claims)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}

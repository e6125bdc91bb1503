package handlers

import (
	"net/http"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles desktop login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the login form. Empty fields are allowed and simply fail.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/auth/login.
// Wrong credentials are a 200 with success=false.
func (ah *AuthHandler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password, clientIP(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return models.PlaceholderIP
}

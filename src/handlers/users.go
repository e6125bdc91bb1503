package handlers

import (
	"net/http"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-gonic/gin"
)

// UserHandler handles account administration
type UserHandler struct {
	accountService *services.AccountService
}

// NewUserHandler creates a new user handler
func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

// UserRequest is the body of user create and update
type UserRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"omitempty,role"`
}

// HandleListUsers handles GET /api/users
func (uh *UserHandler) HandleListUsers(c *gin.Context) {
	users, err := uh.accountService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// HandleCreateUser handles POST /api/users
func (uh *UserHandler) HandleCreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := uh.accountService.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// HandleUpdateUser handles PUT /api/users/:id
func (uh *UserHandler) HandleUpdateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	err := uh.accountService.UpdateUser(c.Request.Context(), c.Param("id"), req.Username, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur mis à jour"})
}

// HandleDeleteUser handles DELETE /api/users/:id
func (uh *UserHandler) HandleDeleteUser(c *gin.Context) {
	if err := uh.accountService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
}

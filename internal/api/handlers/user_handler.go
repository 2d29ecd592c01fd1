package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/makara-hq/portfolio-backend/internal/api/middleware"
	"github.com/makara-hq/portfolio-backend/internal/models"
	"github.com/makara-hq/portfolio-backend/internal/service"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
}

func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// List returns the compact {email, name} shape the dashboard consumes.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.UserListItem, len(users))
	for i, u := range users {
		response[i] = models.UserListItem{Email: u.Email, Name: u.FullName}
	}
	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) Update(c *gin.Context) {
	email := c.Param("email")

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), email, service.UserUpdate{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	email := c.Param("email")

	if err := h.userService.Delete(c.Request.Context(), email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "User deleted successfully"})
}

// GetCurrentUser returns the user carried by the session token.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	email, ok := middleware.RequireUserEmail(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

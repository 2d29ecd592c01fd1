package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/makara-hq/portfolio-backend/internal/models"
	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Client  *ClientHandler
	Project *ProjectHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:    &AuthHandler{authService: services.Auth},
		User:    &UserHandler{userService: services.User},
		Client:  &ClientHandler{clientService: services.Client},
		Project: &ProjectHandler{projectService: services.Project},
	}
}

// respondError maps service errors to HTTP status codes. Anything outside
// the known taxonomy is a storage or logic failure and stays a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource already exists"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, service.ErrInvalidProjectType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrAuthenticationFailed):
		// Never leak identity-provider details to the caller.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// listParams reads page, limit and q query parameters, defaulting to
// page=1 and limit=10 when absent or malformed.
func listParams(c *gin.Context) service.ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	return service.ListParams{
		Page:  page,
		Limit: limit,
		Query: c.Query("q"),
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

func toClientResponse(cl *repository.Client) models.ClientResponse {
	return models.ClientResponse{
		ID:      cl.ID,
		Name:    cl.Name,
		Country: cl.Country,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:           p.ID,
		PMNames:      p.PMNames,
		Name:         p.Name,
		Description:  p.Description,
		Thumbnail:    p.Thumbnail,
		Client:       p.Client,
		Type:         p.Type,
		URL:          p.URL,
		BugReportURL: p.BugReportURL,
	}
}

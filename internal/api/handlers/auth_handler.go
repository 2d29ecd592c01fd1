package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/makara-hq/portfolio-backend/internal/models"
	"github.com/makara-hq/portfolio-backend/internal/service"
	"github.com/makara-hq/portfolio-backend/internal/types"
)

// ============================================
// Auth Handler
// ============================================

type AuthHandler struct {
	authService service.AuthService
}

// Signup redirects to Google with signup intent. The callback rejects
// emails that already have a local password account.
func (h *AuthHandler) Signup(c *gin.Context) {
	h.redirect(c, types.IntentSignup)
}

// Login redirects to Google with login intent.
func (h *AuthHandler) Login(c *gin.Context) {
	h.redirect(c, types.IntentLogin)
}

func (h *AuthHandler) redirect(c *gin.Context, intent string) {
	url, err := h.authService.AuthURL(c.Request.Context(), intent)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback completes the OAuth flow: state check, code exchange, profile
// fetch, user upsert, session token.
func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing state or code"})
		return
	}

	profile, token, err := h.authService.HandleCallback(c.Request.Context(), state, code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Email: profile.Email,
		Name:  profile.Name,
		Token: token,
	})
}

// LoginLocal authenticates a password account and issues a session token.
func (h *AuthHandler) LoginLocal(c *gin.Context) {
	var req models.LocalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.LoginLocal(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Email: user.Email,
		Name:  user.FullName,
		Token: token,
	})
}

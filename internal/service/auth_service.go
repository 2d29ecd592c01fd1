package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/makara-hq/portfolio-backend/internal/config"
	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/types"
)

const (
	stateTTL         = 10 * time.Minute
	userInfoEndpoint = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// GoogleProfile is the subset of the userinfo response we keep.
type GoogleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ============================================
// Auth Service
// ============================================

type AuthService interface {
	// AuthURL builds the Google authorization redirect for the given
	// intent ("login" or "signup") and registers a single-use state.
	AuthURL(ctx context.Context, intent string) (string, error)

	// HandleCallback consumes the state, exchanges the code, fetches the
	// Google profile, upserts the user and issues a session token.
	// Signup intent fails with ErrUserExists when the email already has a
	// local password account.
	HandleCallback(ctx context.Context, state, code string) (*GoogleProfile, string, error)

	// LoginLocal verifies a password account and issues a session token.
	LoginLocal(ctx context.Context, email, password string) (*repository.User, string, error)

	ValidateToken(tokenString string) (*jwt.Token, error)
	GetEmailFromToken(token *jwt.Token) (string, error)
}

type authService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	states   StateStore

	oauth       *oauth2.Config
	userInfoURL string
	// httpClient overrides the default client for the token exchange and
	// userinfo fetch; tests point it at a fake identity provider.
	httpClient *http.Client
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, states StateStore) AuthService {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
		states:   states,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoEndpoint,
	}
}

func (s *authService) AuthURL(ctx context.Context, intent string) (string, error) {
	if intent != types.IntentLogin && intent != types.IntentSignup {
		return "", fmt.Errorf("unknown oauth intent %q", intent)
	}

	state := uuid.NewString()
	if err := s.states.Put(ctx, state, intent, stateTTL); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return s.oauth.AuthCodeURL(state), nil
}

func (s *authService) HandleCallback(ctx context.Context, state, code string) (*GoogleProfile, string, error) {
	intent, ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, "", fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidState
	}

	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		log.Printf("❌ [Auth] Token exchange failed: %v", err)
		return nil, "", ErrAuthenticationFailed
	}

	profile, err := s.fetchProfile(ctx, token.AccessToken)
	if err != nil {
		log.Printf("❌ [Auth] Userinfo fetch failed: %v", err)
		return nil, "", ErrAuthenticationFailed
	}

	existing, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if intent == types.IntentSignup && existing != nil && existing.Password != "" {
		return nil, "", ErrUserExists
	}

	if existing == nil {
		// An empty password hash marks the account as OAuth-only.
		user := &repository.User{
			Email:    profile.Email,
			FullName: profile.Name,
			Password: "",
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("✅ [Auth] Created user %s via Google OAuth", profile.Email)
	}

	sessionToken, err := s.generateToken(profile.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return profile, sessionToken, nil
}

func (s *authService) fetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := s.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email")
	}
	return &profile, nil
}

func (s *authService) LoginLocal(ctx context.Context, email, password string) (*repository.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	// OAuth-only accounts have no password to check against.
	if user == nil || user.Password == "" {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) generateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(s.cfg.JWTExpiry) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	return token, nil
}

func (s *authService) GetEmailFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

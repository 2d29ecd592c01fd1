package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/makara-hq/portfolio-backend/internal/config"
	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/types"
)

// fakeIdP stands in for Google's token and userinfo endpoints.
func fakeIdP(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.FormValue("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fake-access-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fake-access-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"jane@acme.rw","name":"Jane Doe"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthTestService(t *testing.T, idp *httptest.Server) (*authService, repository.UserRepository, *MemoryStateStore) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiry:          1,
		GoogleClientID:     "test-client",
		GoogleClientSecret: "test-client-secret",
		OAuthRedirectURL:   "http://localhost:8000/api/v1/auth/callback",
	}
	userRepo := repository.NewMemoryUserRepository()
	states := NewMemoryStateStore()

	svc := NewAuthService(cfg, userRepo, states).(*authService)
	if idp != nil {
		svc.oauth.Endpoint = oauth2.Endpoint{
			TokenURL:  idp.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
		svc.userInfoURL = idp.URL + "/userinfo"
		svc.httpClient = idp.Client()
	}
	return svc, userRepo, states
}

func storedState(ctx context.Context, t *testing.T, svc *authService, intent string) string {
	t.Helper()

	authURL, err := svc.AuthURL(ctx, intent)
	require.NoError(t, err)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	state := u.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestAuthURLValidatesIntent(t *testing.T) {
	ctx := context.Background()
	svc, _, states := newAuthTestService(t, nil)

	_, err := svc.AuthURL(ctx, "refresh")
	assert.Error(t, err)

	state := storedState(ctx, t, svc, types.IntentLogin)
	intent, ok, err := states.Consume(ctx, state)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.IntentLogin, intent)
}

func TestCallbackCreatesOAuthOnlyUser(t *testing.T) {
	ctx := context.Background()
	idp := fakeIdP(t)
	svc, userRepo, _ := newAuthTestService(t, idp)

	state := storedState(ctx, t, svc, types.IntentSignup)
	profile, token, err := svc.HandleCallback(ctx, state, "good-code")
	require.NoError(t, err)

	assert.Equal(t, "jane@acme.rw", profile.Email)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.NotEmpty(t, token)

	user, err := userRepo.FindByEmail(ctx, "jane@acme.rw")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Jane Doe", user.FullName)
	// OAuth accounts carry no password hash.
	assert.Empty(t, user.Password)
}

func TestCallbackRepeatLoginDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	idp := fakeIdP(t)
	svc, userRepo, _ := newAuthTestService(t, idp)

	state := storedState(ctx, t, svc, types.IntentSignup)
	_, _, err := svc.HandleCallback(ctx, state, "good-code")
	require.NoError(t, err)

	state = storedState(ctx, t, svc, types.IntentLogin)
	_, token, err := svc.HandleCallback(ctx, state, "good-code")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	users, err := userRepo.List(ctx, repository.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	ctx := context.Background()
	idp := fakeIdP(t)
	svc, _, _ := newAuthTestService(t, idp)

	_, _, err := svc.HandleCallback(ctx, "never-issued", "good-code")
	assert.ErrorIs(t, err, ErrInvalidState)

	// A state is single-use.
	state := storedState(ctx, t, svc, types.IntentLogin)
	_, _, err = svc.HandleCallback(ctx, state, "good-code")
	require.NoError(t, err)
	_, _, err = svc.HandleCallback(ctx, state, "good-code")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCallbackSignupRejectsExistingLocalAccount(t *testing.T) {
	ctx := context.Background()
	idp := fakeIdP(t)
	svc, userRepo, _ := newAuthTestService(t, idp)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, &repository.User{
		Email:    "jane@acme.rw",
		FullName: "Jane Doe",
		Password: string(hash),
	}))

	state := storedState(ctx, t, svc, types.IntentSignup)
	_, _, err = svc.HandleCallback(ctx, state, "good-code")
	assert.ErrorIs(t, err, ErrUserExists)

	// Login intent against the same account is fine.
	state = storedState(ctx, t, svc, types.IntentLogin)
	_, token, err := svc.HandleCallback(ctx, state, "good-code")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestCallbackFailedExchangeIsGeneric(t *testing.T) {
	ctx := context.Background()
	idp := fakeIdP(t)
	svc, _, _ := newAuthTestService(t, idp)

	state := storedState(ctx, t, svc, types.IntentLogin)
	_, _, err := svc.HandleCallback(ctx, state, "bad-code")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginLocal(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newAuthTestService(t, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, &repository.User{
		Email:    "jane@acme.rw",
		FullName: "Jane Doe",
		Password: string(hash),
	}))
	// OAuth-only account, no password hash.
	require.NoError(t, userRepo.Create(ctx, &repository.User{
		Email:    "oauth@acme.rw",
		FullName: "OAuth Only",
	}))

	user, token, err := svc.LoginLocal(ctx, "jane@acme.rw", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.rw", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.LoginLocal(ctx, "jane@acme.rw", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginLocal(ctx, "ghost@acme.rw", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginLocal(ctx, "oauth@acme.rw", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _, _ := newAuthTestService(t, nil)

	signed, err := svc.generateToken("jane@acme.rw")
	require.NoError(t, err)

	token, err := svc.ValidateToken(signed)
	require.NoError(t, err)

	email, err := svc.GetEmailFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.rw", email)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryStateStorePurgesExpired(t *testing.T) {
	ctx := context.Background()
	states := NewMemoryStateStore()

	require.NoError(t, states.Put(ctx, "fresh", types.IntentLogin, time.Minute))
	require.NoError(t, states.Put(ctx, "stale", types.IntentLogin, -time.Minute))

	assert.Equal(t, 1, states.PurgeExpired(ctx))

	_, ok, err := states.Consume(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = states.Consume(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)
}

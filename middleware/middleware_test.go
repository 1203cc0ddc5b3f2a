package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/repository/memory"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	store  *repository.Store
	auth   *services.AuthService
	user   models.User
	tokens services.Tokens
	router *mux.Router
}

func newAuthFixture(t *testing.T, accessExpiry time.Duration) *authFixture {
	t.Helper()
	f := &authFixture{store: memory.NewStore()}
	f.auth = services.NewAuthService(f.store, utils.NewTokenManager("secret", accessExpiry, time.Hour), false)

	f.user = models.User{Name: "Ann", Email: "ann@example.com", Role: models.RoleCustomer}
	require.NoError(t, f.store.Users.Create(context.Background(), &f.user))

	var err error
	f.tokens, err = f.auth.Authenticate(context.Background(), f.user, "127.0.0.1", "test")
	require.NoError(t, err)

	f.router = mux.NewRouter()
	protected := f.router.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddleware(f.auth))
	protected.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusOK, UserID(r.Context()).Hex())
	})
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(RequireRole(models.RoleAdmin))
	admin.HandleFunc("/only", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return f
}

func TestAuthMiddlewareAcceptsBearerAndCookie(t *testing.T) {
	f := newAuthFixture(t, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokens.Access)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), f.user.ID.Hex())

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: f.tokens.Access})
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	f := newAuthFixture(t, time.Minute)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareFallsBackToRefreshCookie(t *testing.T) {
	f := newAuthFixture(t, time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: services.RefreshTokenCookie, Value: f.tokens.Refresh})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	names := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		names[c.Name] = true
	}
	assert.True(t, names[services.AccessTokenCookie])
	assert.True(t, names[services.RefreshTokenCookie])
}

func TestAuthMiddlewareRejectsLoggedOutSession(t *testing.T) {
	f := newAuthFixture(t, time.Minute)
	require.NoError(t, f.auth.Logout(context.Background(), f.tokens.SessionID.Hex()))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokens.Access)
	req.AddCookie(&http.Cookie{Name: services.RefreshTokenCookie, Value: f.tokens.Refresh})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture(t, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/only", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokens.Access)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
	require.NoError(t, f.store.Users.Create(context.Background(), &admin))
	tokens, err := f.auth.Authenticate(context.Background(), admin, "127.0.0.1", "test")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/only", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.Access)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = "10.2.2.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 0, rl.Cleanup(time.Hour))
	assert.Equal(t, 2, rl.Cleanup(-time.Second))
}

func TestLoggerSetsRequestID(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

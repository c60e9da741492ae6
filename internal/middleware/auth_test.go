package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-console/internal/auth"
	"github.com/ukydev/fleet-console/internal/models"
)

type fakeSessions struct {
	sess *models.Session
	err  error
}

func (f *fakeSessions) Session(ctx context.Context) (*models.Session, error) {
	return f.sess, f.err
}

func login(t *testing.T, authService *auth.Service, username, password string) *models.Session {
	t.Helper()
	sess, err := authService.Login(username, password)
	require.NoError(t, err)
	return sess
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)
	admin := login(t, authService, "cabal", "cabal123")
	sessions := &fakeSessions{sess: admin}
	middleware := NewAuthMiddleware(authService, sessions)

	t.Run("valid token", func(t *testing.T) {
		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			claims, ok := GetUserFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "cabal", claims.Username)
			assert.Equal(t, models.RoleAdmin, claims.Role)
			assert.Equal(t, admin.ID, claims.SessionID)
		})

		w := serve(middleware.Authenticate(handler), "GET", "/api/companies", admin.Token)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		w := serve(middleware.Authenticate(handler), "GET", "/api/companies", "")
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		w := serve(middleware.Authenticate(handler), "GET", "/api/companies", "invalid-token")
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token of an ended session", func(t *testing.T) {
		other := login(t, authService, "usuario", "usuario123")
		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		w := serve(middleware.Authenticate(handler), "GET", "/api/companies", other.Token)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logged out", func(t *testing.T) {
		mw := NewAuthMiddleware(authService, &fakeSessions{})
		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		w := serve(mw.Authenticate(handler), "GET", "/api/companies", admin.Token)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session read failure", func(t *testing.T) {
		mw := NewAuthMiddleware(authService, &fakeSessions{err: errors.New("disk gone")})
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		w := serve(mw.Authenticate(handler), "GET", "/api/companies", admin.Token)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("skip auth path", func(t *testing.T) {
		for _, path := range []string{"/api/auth/login", "/health"} {
			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			})

			w := serve(middleware.Authenticate(handler), "POST", path, "")
			assert.True(t, handlerCalled, path)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("admin passes user check", func(t *testing.T) {
		admin := login(t, authService, "cabal", "cabal123")
		middleware := NewAuthMiddleware(authService, &fakeSessions{sess: admin})

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		h := middleware.Authenticate(middleware.RequireRole(models.RoleUser)(handler))
		w := serve(h, "GET", "/api/companies", admin.Token)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user fails admin check", func(t *testing.T) {
		user := login(t, authService, "usuario", "usuario123")
		middleware := NewAuthMiddleware(authService, &fakeSessions{sess: user})

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		h := middleware.Authenticate(middleware.RequireRole(models.RoleAdmin)(handler))
		w := serve(h, "GET", "/api/companies", user.Token)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no user context", func(t *testing.T) {
		middleware := NewAuthMiddleware(authService, &fakeSessions{})
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		w := serve(middleware.RequireRole(models.RoleUser)(handler), "GET", "/api/companies", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		action   string
		want     int
	}{
		{"admin deletes", "cabal", "cabal123", models.ActionDeleteRecords, http.StatusOK},
		{"user deletes", "usuario", "usuario123", models.ActionDeleteRecords, http.StatusForbidden},
		{"user edits", "usuario", "usuario123", models.ActionEditRecords, http.StatusOK},
		{"user refreshes alerts", "usuario", "usuario123", models.ActionRefreshAlerts, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := login(t, authService, tt.username, tt.password)
			middleware := NewAuthMiddleware(authService, &fakeSessions{sess: sess})
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

			h := middleware.Authenticate(middleware.RequirePermission(tt.action)(handler))
			w := serve(h, "DELETE", "/api/companies/1/vehicles/1", sess.Token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	middleware := NewRateLimitMiddleware()
	now := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	middleware.now = func() time.Time { return now }

	t.Run("rate limit not exceeded", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.RateLimit(5, time.Minute)(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rate limit exceeded then window passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "192.168.1.2:12345"

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})
		rateLimitHandler := middleware.RateLimit(1, time.Minute)(handler)

		w := httptest.NewRecorder()
		rateLimitHandler.ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handlerCalled = false
		rateLimitHandler.ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		now = now.Add(time.Minute + time.Second)
		w = httptest.NewRecorder()
		rateLimitHandler.ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:4000"
	assert.Equal(t, "10.0.0.5", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}

func TestGetUserFromContext(t *testing.T) {
	claims := &models.Claims{
		SessionID: "sess-1",
		Username:  "cabal",
		Role:      models.RoleAdmin,
	}

	ctx := context.WithValue(context.Background(), UserContextKey, claims)
	retrieved, ok := GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, retrieved)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	w := httptest.NewRecorder()
	RequestLogger(handler).ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

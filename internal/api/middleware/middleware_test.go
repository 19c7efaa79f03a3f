package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akhil-Baki/ai-study-pilot/config"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlacklist map[string]bool

func (f fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return f[jti], nil
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func newJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "middleware-test-secret-0123",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func protectedEngine(mgr *jwt.Manager, bl TokenBlacklist) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(mgr, bl), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(ctxUserID), "username": c.GetString(ctxUsername)})
	})
	return r
}

func get(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	mgr := newJWT()
	access, err := mgr.GenerateAccessToken(7, "alice")
	require.NoError(t, err)
	refresh, err := mgr.GenerateRefreshToken(7, "alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + access, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := get(protectedEngine(mgr, nil), "/me", headers)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestJWTAuth_SetsIdentity(t *testing.T) {
	mgr := newJWT()
	access, err := mgr.GenerateAccessToken(7, "alice")
	require.NoError(t, err)

	w := get(protectedEngine(mgr, nil), "/me", map[string]string{"Authorization": "Bearer " + access})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"username":"alice"}`, w.Body.String())
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	mgr := newJWT()
	access, err := mgr.GenerateAccessToken(7, "alice")
	require.NoError(t, err)
	claims, err := mgr.ParseToken(access)
	require.NoError(t, err)

	w := get(protectedEngine(mgr, fakeBlacklist{claims.ID: true}), "/me", map[string]string{"Authorization": "Bearer " + access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token revoked")
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	r := gin.New()
	r.POST("/chat", func(c *gin.Context) { c.Set(ctxUserID, int64(3)) }, RateLimit(limiter, 5, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "rate_limit:user:3:/chat", limiter.keys[0])

	limiter.allowed = true
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	for name, limiter := range map[string]RateLimiter{
		"nil limiter":   nil,
		"limiter error": &fakeLimiter{err: errors.New("redis down")},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", RateLimit(limiter, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
			assert.Equal(t, http.StatusOK, get(r, "/x", nil).Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := get(r, "/x", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = get(r, "/x", map[string]string{"X-Request-ID": strings.Repeat("x", 100)})
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/upload", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/x", nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

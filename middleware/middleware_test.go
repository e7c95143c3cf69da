package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"AdminBackend/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "admin_session"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *jwt.Manager {
	return jwt.NewHMACManager([]byte("middleware-test-secret"), time.Hour)
}

func gatedRouter(tokens *jwt.Manager, gates ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(Authenticate(tokens, testCookie))
	handlers := append(gates, func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.SubjectID, "role": identity.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestGates(t *testing.T) {
	tokens := newTokens()
	adminToken, _, err := tokens.GenerateToken(1, "admin")
	require.NoError(t, err)
	userToken, _, err := tokens.GenerateToken(2, "user")
	require.NoError(t, err)
	foreignToken, _, err := jwt.NewHMACManager([]byte("other"), time.Hour).GenerateToken(1, "admin")
	require.NoError(t, err)

	tests := []struct {
		name           string
		gate           gin.HandlerFunc
		header         string
		cookie         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "login without token", gate: RequireLogin(), expectedStatus: http.StatusUnauthorized, expectedBody: `{"message":"Unauthorized"}`},
		{name: "login with garbage token", gate: RequireLogin(), header: "Bearer nope", expectedStatus: http.StatusUnauthorized, expectedBody: `{"message":"Unauthorized"}`},
		{name: "login with foreign signature", gate: RequireLogin(), header: "Bearer " + foreignToken, expectedStatus: http.StatusUnauthorized},
		{name: "login without bearer prefix", gate: RequireLogin(), header: adminToken, expectedStatus: http.StatusUnauthorized},
		{name: "login with header", gate: RequireLogin(), header: "Bearer " + userToken, expectedStatus: http.StatusOK},
		{name: "login with cookie", gate: RequireLogin(), cookie: userToken, expectedStatus: http.StatusOK},
		{name: "admin without token", gate: RequireRole("admin"), expectedStatus: http.StatusUnauthorized, expectedBody: `{"message":"Unauthorized"}`},
		{name: "admin with user token", gate: RequireRole("admin"), header: "Bearer " + userToken, expectedStatus: http.StatusForbidden, expectedBody: `{"message":"Forbidden Resource"}`},
		{name: "admin with admin token", gate: RequireRole("admin"), header: "Bearer " + adminToken, expectedStatus: http.StatusOK, expectedBody: `{"id":1,"role":"admin"}`},
		{name: "header wins over cookie", gate: RequireRole("admin"), header: "Bearer " + adminToken, cookie: userToken, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gatedRouter(tokens, tt.gate)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: testCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

type sessionsFunc func(ctx context.Context, tokenID string) (bool, error)

func (f sessionsFunc) SessionActive(ctx context.Context, tokenID string) (bool, error) {
	return f(ctx, tokenID)
}

func TestAuthenticate_LoggedOutSession(t *testing.T) {
	tokens := newTokens().WithSessions(sessionsFunc(func(context.Context, string) (bool, error) {
		return false, nil
	}))
	token, _, err := tokens.GenerateToken(1, "admin")
	require.NoError(t, err)

	router := gatedRouter(tokens, RequireRole("admin"))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func hit(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func limitedRouter(counter Counter) *gin.Engine {
	router := gin.New()
	router.POST("/login", RateLimit(counter, 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRateLimit(t *testing.T) {
	router := limitedRouter(&fakeCounter{counts: map[string]int64{}})

	assert.Equal(t, http.StatusNoContent, hit(router).Code)
	assert.Equal(t, http.StatusNoContent, hit(router).Code)

	w := hit(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many requests"}`, w.Body.String())
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimit_PassesThroughOnCounterFailure(t *testing.T) {
	router := limitedRouter(&fakeCounter{err: errors.New("redis down")})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, hit(router).Code)
	}

	router = limitedRouter(nil)
	assert.Equal(t, http.StatusNoContent, hit(router).Code)
}

func TestRedisCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	counter := NewRedisCounter(rdb, "rate_limit:")
	ctx := context.Background()

	count, err := counter.Incr(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, mr.TTL("rate_limit:10.0.0.1"))

	mr.FastForward(10 * time.Second)
	count, err = counter.Incr(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 50*time.Second, mr.TTL("rate_limit:10.0.0.1"), "later hits keep the first expiry")

	mr.FastForward(time.Minute)
	count, err = counter.Incr(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCounter_KeyAlwaysExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	counter := NewRedisCounter(rdb, "rate_limit:")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := counter.Incr(ctx, "10.0.0.2", time.Minute)
		require.NoError(t, err)
		assert.Positive(t, mr.TTL("rate_limit:10.0.0.2"))
	}

	mr.Close()
	count, err := counter.Incr(ctx, "10.0.0.2", time.Minute)
	assert.Error(t, err)
	assert.Zero(t, count)
}

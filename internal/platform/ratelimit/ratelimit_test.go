package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLimiter はLimiterインターフェースのモック実装です。
type mockLimiter struct {
	AllowFunc  func(ctx context.Context, key string, limit Limit) (*Result, error)
	AllowCalls int
	LastKey    string
}

func (m *mockLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	m.AllowCalls++
	m.LastKey = key
	return m.AllowFunc(ctx, key, limit)
}

func newTestRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.POST("/plot", mw, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func doPost(r http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plot", nil)
	req.RemoteAddr = "192.0.2.10:40000"
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		allow          func(ctx context.Context, key string, limit Limit) (*Result, error)
		expectedStatus int
		retryAfter     string
	}{
		{
			name: "allowed",
			allow: func(ctx context.Context, key string, limit Limit) (*Result, error) {
				return &Result{Allowed: true, Remaining: 4}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "rejected with retry-after rounded up",
			allow: func(ctx context.Context, key string, limit Limit) (*Result, error) {
				return &Result{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil
			},
			expectedStatus: http.StatusTooManyRequests,
			retryAfter:     "2",
		},
		{
			name: "limiter error fails open",
			allow: func(ctx context.Context, key string, limit Limit) (*Result, error) {
				return nil, errors.New("redis down")
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &mockLimiter{AllowFunc: tt.allow}
			w := doPost(newTestRouter(Middleware(l, "plot", PerMinute(10, 5))))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.retryAfter, w.Header().Get("Retry-After"))
			assert.Equal(t, 1, l.AllowCalls)
			assert.Equal(t, "plot:192.0.2.10", l.LastKey)
		})
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := doPost(newTestRouter(Middleware(nil, "plot", PerMinute(10, 5))))
	assert.Equal(t, http.StatusOK, w.Code)

	l := &mockLimiter{}
	w = doPost(newTestRouter(Middleware(l, "plot", PerMinute(0, 5))))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, l.AllowCalls)
}

func TestRedisLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	l := NewRedisLimiter(rdb)
	limit := Limit{Rate: 2, Period: time.Hour, Burst: 2}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "plot:test", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
	}

	res, err := l.Allow(ctx, "plot:test", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Positive(t, res.RetryAfter)

	// 別のキーは独立して数えられる
	res, err = l.Allow(ctx, "plot:other", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisLimiter_AllowError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	_, err := NewRedisLimiter(rdb).Allow(context.Background(), "k", PerMinute(1, 1))
	assert.ErrorContains(t, err, "rate limit check failed")
}

func TestRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 3, retryAfterSeconds(2100*time.Millisecond))
}

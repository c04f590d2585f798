package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocats/internal/pkg/cache"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	h := middleware.RateLimiter(client, 6, time.Minute, logger.NewNop())(okHandler())

	for i := 0; i < 6; i++ {
		rec := hit(h, "10.0.0.1:5000")
		require.Equal(t, http.StatusOK, rec.Code, "requisição %d", i+1)
	}

	rec := hit(h, "10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"statusCode":429,"message":"ThrottlerException: Too Many Requests","error":"Too Many Requests"}`, rec.Body.String())

	// Outro IP tem a própria janela.
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:5000").Code)

	// Janela expirada libera de novo.
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5002").Code)
}

func TestRateLimiter_FailsOpenWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	h := middleware.RateLimiter(client, 1, time.Minute, logger.NewNop())(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000").Code)
}

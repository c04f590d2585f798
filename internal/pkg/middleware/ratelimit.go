package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "gocats/internal/errors"
	"gocats/internal/pkg/cache"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/response"
)

// RateLimiter aplica uma janela fixa por IP usando o contador do Redis.
// Se o Redis falhar, a requisição segue (fail open) e o erro é logado.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + r.URL.Path + ":" + clientIP(r)

			count, err := client.IncrWindow(r.Context(), key, window)
			if err != nil {
				log.Warn("Rate limiter indisponível, liberando requisição.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.Error(w, r, apperror.NewTooManyRequestsError(), log)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP usa o RemoteAddr da conexão. Cabeçalhos X-Forwarded-For/X-Real-IP
// são ignorados: vêm do cliente e trocariam a chave do limite a cada requisição.
func clientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/requestid"
)

// HeaderRequestID é o cabeçalho de correlação aceito e devolvido.
const HeaderRequestID = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger gera (ou reaproveita) o ID da requisição e loga status e latência.
// 5xx sai em Error, 4xx em Warn, o resto em Info.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(HeaderRequestID, requestID)

			ctx := requestid.With(r.Context(), requestID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(ctx))

			fields := map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"latency_ms": time.Since(start).Milliseconds(),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.With(fields).Error("Requisição concluída com erro de servidor.", nil)
			case rec.status >= http.StatusBadRequest:
				log.Warn("Requisição rejeitada.", fields)
			default:
				log.Info("Requisição concluída.", fields)
			}
		})
	}
}

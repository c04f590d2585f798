package response

import (
	"encoding/json"
	"net/http"

	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/requestid"
)

// JSON escreve o payload com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz o erro para o corpo público padronizado ({statusCode, message, error}).
// Detalhes internos vão apenas para o log.
func Error(w http.ResponseWriter, r *http.Request, err error, log logger.Logger) {
	status, body := apperror.ToResponse(err)
	reqID := requestid.From(r.Context())

	if status >= http.StatusInternalServerError {
		log.With(map[string]interface{}{"request_id": reqID}).Error("Erro de servidor em "+r.Method+" "+r.URL.Path, err)
	} else {
		log.Debug("Requisição rejeitada.", map[string]interface{}{
			"request_id": reqID,
			"status":     status,
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
	}

	JSON(w, status, body, log)
}

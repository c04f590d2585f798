package cat

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gocats/internal/api/request"
	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/response"
)

// CatService define o contrato que o Handler espera da camada de Serviço.
type CatService interface {
	CreateCat(ctx context.Context, req domain.CatRequest) (domain.Cat, error)
	GetCat(ctx context.Context, id int64) (domain.Cat, error)
	ListCats(ctx context.Context) ([]domain.Cat, error)
	UpdateCat(ctx context.Context, id int64, req domain.CatRequest) (domain.Cat, error)
	DeleteCat(ctx context.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler de gatos.
// O controle de acesso fica no router (middleware.Protect).
type Handler struct {
	Service CatService
	Decoder *request.Decoder
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CatService, decoder *request.Decoder, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Decoder: decoder,
		Logger:  log,
	}
}

// Create lida com POST /cats.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CatRequest
	if err := h.Decoder.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	cat, err := h.Service.CreateCat(r.Context(), req)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.CatResponse{Cat: cat.ToDTO()}, h.Logger)
}

// List lida com GET /cats.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Service.ListCats(r.Context())
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	dtos := make([]domain.CatDTO, 0, len(cats))
	for _, c := range cats {
		dtos = append(dtos, c.ToDTO())
	}
	response.JSON(w, http.StatusOK, dtos, h.Logger)
}

// Get lida com GET /cats/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	cat, err := h.Service.GetCat(r.Context(), id)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.CatResponse{Cat: cat.ToDTO()}, h.Logger)
}

// Update lida com PUT /cats/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	var req domain.CatRequest
	if err := h.Decoder.DecodeAndValidate(r, &req); err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	cat, err := h.Service.UpdateCat(r.Context(), id, req)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.CatResponse{Cat: cat.ToDTO()}, h.Logger)
}

// Delete lida com DELETE /cats/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	if err := h.Service.DeleteCat(r.Context(), id); err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.DeleteResponse{Deleted: true}, h.Logger)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("Validation failed (numeric string is expected)")
	}
	return id, nil
}

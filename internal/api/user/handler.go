package user

import (
	"context"
	"net/http"

	"gocats/internal/domain"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/middleware"
	"gocats/internal/pkg/response"
)

// UserService define o contrato para as consultas de usuários.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	Me(ac *domain.AuthContext) (domain.User, error)
}

// Handler agrupa os endpoints de usuários.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// List lida com GET /users. Cada usuário sai como UserDTO, sem hash de senha.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	dtos := make([]domain.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	response.JSON(w, http.StatusOK, dtos, h.Logger)
}

// Me lida com GET /users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Me(middleware.AuthContextFrom(r.Context()))
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.UserResponse{User: user.ToDTO()}, h.Logger)
}

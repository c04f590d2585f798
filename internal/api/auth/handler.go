package auth

import (
	"context"
	"net/http"

	"gocats/internal/api/request"
	"gocats/internal/domain"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/response"
)

// AuthService define o contrato para as operações de registro e login.
type AuthService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, domain.Token, error)
}

// Handler agrupa os endpoints públicos de autenticação.
type Handler struct {
	Service AuthService
	Decoder *request.Decoder
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, decoder *request.Decoder, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Decoder: decoder,
		Logger:  log,
	}
}

// Register lida com POST /auth/register.
// Responde 200 com {user}; o hash da senha nunca sai do serviço.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := h.Decoder.DecodeAndValidate(r, &reg); err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	user, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.UserResponse{User: user.ToDTO()}, h.Logger)
}

// Login lida com POST /auth/login.
// Payload inválido é 400; credenciais erradas são sempre o mesmo 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var login domain.UserLogin
	if err := h.Decoder.DecodeAndValidate(r, &login); err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	user, token, err := h.Service.Login(r.Context(), login.Email, login.Password)
	if err != nil {
		response.Error(w, r, err, h.Logger)
		return
	}

	response.JSON(w, http.StatusOK, domain.LoginResponse{
		User:  user.ToDTO(),
		Token: token.ToResponse(),
	}, h.Logger)
}

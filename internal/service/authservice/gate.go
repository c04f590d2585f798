package authservice

import (
	"context"
	"strings"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
)

const bearerScheme = "bearer"

// Authenticate resolve o cabeçalho Authorization em um AuthContext.
// Qualquer falha (cabeçalho ausente, token inválido, usuário removido) é
// devolvida como UnauthorizedError; o motivo fica só nos logs.
// Erro de banco vira InternalError: o gate continua fechado.
func (s *Service) Authenticate(ctx context.Context, authHeader string) (domain.AuthContext, error) {
	tokenString, ok := parseBearer(authHeader)
	if !ok {
		s.logger.Debug("Requisição sem bearer token válido.", nil)
		return domain.AuthContext{}, apperror.NewUnauthorizedError("cabeçalho Authorization ausente ou malformado")
	}

	userID, err := s.TokenSvc.Verify(tokenString, s.now())
	if err != nil {
		s.logger.Info("Token rejeitado.", map[string]interface{}{"error": err.Error()})
		return domain.AuthContext{}, apperror.NewUnauthorizedError("token inválido ou expirado")
	}

	user, found, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error("Falha ao resolver usuário do token.", err)
		return domain.AuthContext{}, err
	}
	if !found {
		s.logger.Info("Token de usuário inexistente.", map[string]interface{}{"user_id": userID})
		return domain.AuthContext{}, apperror.NewUnauthorizedError("usuário do token não existe")
	}

	return domain.AuthContext{User: user}, nil
}

// Authorize compara o papel do AuthContext com os papéis exigidos pela rota.
// Conjunto vazio libera qualquer usuário autenticado; contexto nil é 401.
func Authorize(required []domain.UserRole, ac *domain.AuthContext) error {
	if len(required) == 0 {
		return nil
	}
	if ac == nil {
		return apperror.NewUnauthorizedError("autorização sem contexto de autenticação")
	}
	for _, role := range required {
		if ac.Role() == role {
			return nil
		}
	}
	return apperror.NewForbiddenError("papel " + string(ac.Role()) + " não permitido")
}

// parseBearer aceita "Bearer <token>" com o esquema em qualquer caixa.
func parseBearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	return parts[1], true
}

package userservice

import (
	"context"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
)

// UserService define o serviço de consulta de usuários.
type UserService struct {
	UserRepo domain.UserRepository
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		logger:   logger,
	}
}

// ListUsers devolve todos os usuários cadastrados.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar usuários.", err)
		return nil, err
	}
	return users, nil
}

// Me devolve o usuário resolvido pelo gate de autenticação.
func (s *UserService) Me(ac *domain.AuthContext) (domain.User, error) {
	if ac == nil {
		return domain.User{}, apperror.NewUnauthorizedError("contexto de autenticação ausente")
	}
	return ac.User, nil
}

package catservice

import (
	"context"
	"strings"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
)

// Service implementa as regras de negócio do recurso Cat.
type Service struct {
	repo   domain.CatRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Gatos.
func NewService(repo domain.CatRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateCat cria um novo gato após validações de negócio.
func (s *Service) CreateCat(ctx context.Context, req domain.CatRequest) (domain.Cat, error) {
	s.logger.Debug("Iniciando criação de gato no serviço.", map[string]interface{}{"name": req.Name})

	cat, err := s.fromRequest(req)
	if err != nil {
		return domain.Cat{}, err
	}

	created, err := s.repo.Create(ctx, cat)
	if err != nil {
		return domain.Cat{}, err
	}

	s.logger.Info("Gato criado com sucesso.", map[string]interface{}{"id": created.ID})
	return created, nil
}

// GetCat busca um gato pelo ID.
func (s *Service) GetCat(ctx context.Context, id int64) (domain.Cat, error) {
	if err := validateID(id); err != nil {
		return domain.Cat{}, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListCats devolve todos os gatos.
func (s *Service) ListCats(ctx context.Context) ([]domain.Cat, error) {
	return s.repo.FindAll(ctx)
}

// UpdateCat substitui os campos editáveis de um gato existente.
func (s *Service) UpdateCat(ctx context.Context, id int64, req domain.CatRequest) (domain.Cat, error) {
	s.logger.Debug("Iniciando atualização de gato no serviço.", map[string]interface{}{"id": id})

	if err := validateID(id); err != nil {
		return domain.Cat{}, err
	}
	cat, err := s.fromRequest(req)
	if err != nil {
		return domain.Cat{}, err
	}
	cat.ID = id

	updated, err := s.repo.Update(ctx, cat)
	if err != nil {
		return domain.Cat{}, err
	}

	s.logger.Info("Gato atualizado com sucesso.", map[string]interface{}{"id": id})
	return updated, nil
}

// DeleteCat remove um gato pelo ID.
func (s *Service) DeleteCat(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Gato removido.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) fromRequest(req domain.CatRequest) (domain.Cat, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.logger.Warn("Nome de gato vazio.", nil)
		return domain.Cat{}, apperror.NewValidationError("name should not be empty")
	}
	if req.Age != nil && *req.Age < 0 {
		return domain.Cat{}, apperror.NewValidationError("age must not be less than 0")
	}
	// age é NUMERIC(5,2) no banco.
	if req.Age != nil && *req.Age >= 1000 {
		return domain.Cat{}, apperror.NewValidationError("age must be less than 1000")
	}
	return domain.Cat{
		Name:  name,
		Age:   req.Age,
		Breed: strings.TrimSpace(req.Breed),
	}, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return apperror.NewValidationError("id must be a positive integer")
	}
	return nil
}

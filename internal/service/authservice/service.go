package authservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/password"
)

// PasswordHasher é o contrato de internal/pkg/password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	Issue(userID int64, now time.Time) (domain.Token, error)
	Verify(tokenString string, now time.Time) (int64, error)
}

// dummyPassword alimenta o hash usado quando o e-mail não existe no login.
const dummyPassword = "gocats-dummy-password"

// Service concentra registro, login e os dois gates de acesso.
// Não guarda estado por requisição; só dependências imutáveis.
type Service struct {
	UserRepo domain.UserRepository
	Hasher   PasswordHasher
	TokenSvc TokenService
	logger   logger.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewService cria uma nova instância do Service, injetando repositório, hasher e tokens.
func NewService(repo domain.UserRepository, hasher PasswordHasher, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{
		UserRepo: repo,
		Hasher:   hasher,
		TokenSvc: tokenSvc,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock troca o relógio usado para emitir e validar tokens.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register cria um novo usuário. O e-mail precisa estar livre; a restrição
// UNIQUE do banco decide a corrida entre dois registros simultâneos.
func (s *Service) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	s.logger.Debug("Iniciando registro de usuário.", map[string]interface{}{"email": registration.Email})

	if !registration.Role.Valid() {
		return domain.User{}, apperror.NewValidationError("role must be one of the following values: Admin, User")
	}
	if len(registration.Password) > password.MaxBytes {
		return domain.User{}, apperror.NewValidationError("password must be shorter than or equal to 72 bytes")
	}

	_, found, err := s.UserRepo.FindByEmail(ctx, registration.Email)
	if err != nil {
		s.logger.Error("Falha ao verificar e-mail existente.", err)
		return domain.User{}, err
	}
	if found {
		s.logger.Info("Registro recusado: e-mail já cadastrado.", map[string]interface{}{"email": registration.Email})
		return domain.User{}, apperror.NewAlreadyExistsError(apperror.MsgAlreadyExists, nil)
	}

	hashedPassword, err := s.Hasher.Hash(registration.Password)
	if err != nil {
		s.logger.Error("Falha ao gerar hash da senha.", err)
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.UserRepo.Save(ctx, domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: hashedPassword,
		Role:         registration.Role,
	})
	if err != nil {
		if apperror.IsAlreadyExists(err) {
			s.logger.Info("Registro recusado: corrida perdida no UNIQUE de e-mail.", map[string]interface{}{"email": registration.Email})
			return domain.User{}, err
		}
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			return domain.User{}, err
		}
		return domain.User{}, apperror.NewInternalError("Falha ao persistir usuário.", err)
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return user, nil
}

// Login confere as credenciais e emite um token. E-mail inexistente, senha
// errada e falha na emissão do token produzem o mesmo Unauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, domain.Token, error) {
	user, found, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário no login.", err)
		return domain.User{}, domain.Token{}, err
	}

	if !found {
		// Mesmo custo de bcrypt do caminho com usuário existente.
		s.Hasher.Verify(password, s.dummy())
		s.logger.Info("Login recusado.", map[string]interface{}{"reason": "email desconhecido"})
		return domain.User{}, domain.Token{}, apperror.NewUnauthorizedError("credenciais inválidas")
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		s.logger.Info("Login recusado.", map[string]interface{}{"reason": "senha incorreta", "user_id": user.ID})
		return domain.User{}, domain.Token{}, apperror.NewUnauthorizedError("credenciais inválidas")
	}

	token, err := s.TokenSvc.Issue(user.ID, s.now())
	if err != nil {
		s.logger.Error("Falha ao emitir token; login recusado.", err)
		return domain.User{}, domain.Token{}, apperror.NewUnauthorizedError("falha na emissão do token")
	}

	s.logger.Info("Login efetuado.", map[string]interface{}{"user_id": user.ID})
	return user, token, nil
}

// dummy devolve o hash comparado quando o e-mail não existe. Se o hasher
// falhar, cai para password.FallbackHash, que custa o mesmo no Verify.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.Hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("Falha ao gerar hash fictício para o login.", map[string]interface{}{"error": err.Error()})
			s.dummyHash = password.FallbackHash
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

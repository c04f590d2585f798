package authservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/password"
	"gocats/internal/pkg/token"
	"gocats/internal/service/authservice"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type deps struct {
	repo   *MockUserRepository
	hasher *MockHasher
	tokens *MockTokenService
	svc    *authservice.Service
}

func newDeps() deps {
	d := deps{
		repo:   new(MockUserRepository),
		hasher: new(MockHasher),
		tokens: new(MockTokenService),
	}
	d.svc = authservice.NewService(d.repo, d.hasher, d.tokens, logger.NewNop()).
		WithClock(func() time.Time { return fixedNow })
	return d
}

func axeRegistration() domain.UserRegistration {
	return domain.UserRegistration{Name: "Axe", Email: "axe@g.com", Password: "123", Role: domain.RoleAdmin}
}

// --- Testes para Register ---

func TestRegister_Success(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()

	d.repo.On("FindByEmail", mock.Anything, reg.Email).Return(domain.User{}, false, nil)
	d.hasher.On("Hash", "123").Return("hashed-123", nil)
	d.repo.On("Save", mock.Anything, domain.User{
		Name: "Axe", Email: "axe@g.com", PasswordHash: "hashed-123", Role: domain.RoleAdmin,
	}).Return(domain.User{ID: 1, Name: "Axe", Email: "axe@g.com", PasswordHash: "hashed-123", Role: domain.RoleAdmin, CreatedAt: fixedNow, UpdatedAt: fixedNow}, nil)

	user, err := d.svc.Register(context.Background(), reg)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	d.repo.AssertExpectations(t)
	d.hasher.AssertExpectations(t)
}

func TestRegister_Fail_EmailTaken(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()

	d.repo.On("FindByEmail", mock.Anything, reg.Email).Return(domain.User{ID: 1}, true, nil)

	_, err := d.svc.Register(context.Background(), reg)

	assert.True(t, apperror.IsAlreadyExists(err))
	status, body := apperror.ToResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "User with that email already exists", body.Message)
	d.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	d.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_Fail_RaceLostAtInsert(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()

	d.repo.On("FindByEmail", mock.Anything, reg.Email).Return(domain.User{}, false, nil)
	d.hasher.On("Hash", "123").Return("h", nil)
	d.repo.On("Save", mock.Anything, mock.Anything).
		Return(domain.User{}, apperror.NewAlreadyExistsError(apperror.MsgAlreadyExists, errors.New("23505")))

	_, err := d.svc.Register(context.Background(), reg)

	assert.True(t, apperror.IsAlreadyExists(err))
}

func TestRegister_Fail_HashError(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()

	d.repo.On("FindByEmail", mock.Anything, reg.Email).Return(domain.User{}, false, nil)
	d.hasher.On("Hash", "123").Return("", errors.New("rng exhausted"))

	_, err := d.svc.Register(context.Background(), reg)

	assert.IsType(t, &apperror.InternalError{}, err)
	d.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_Fail_PersistenceError(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()

	d.repo.On("FindByEmail", mock.Anything, reg.Email).Return(domain.User{}, false, nil)
	d.hasher.On("Hash", "123").Return("h", nil)
	d.repo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, errors.New("disk full"))

	_, err := d.svc.Register(context.Background(), reg)

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestRegister_Fail_InvalidRole(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()
	reg.Role = "Root"

	_, err := d.svc.Register(context.Background(), reg)

	assert.IsType(t, &apperror.ValidationError{}, err)
	d.repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestRegister_Fail_PasswordOverBcryptLimit(t *testing.T) {
	d := newDeps()
	reg := axeRegistration()
	// 72 caracteres, 144 bytes.
	reg.Password = strings.Repeat("é", 72)

	_, err := d.svc.Register(context.Background(), reg)

	assert.IsType(t, &apperror.ValidationError{}, err)
	status, _ := apperror.ToResponse(err)
	assert.Equal(t, 400, status)
	d.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestRegister_MultibytePasswordWithRealHasher(t *testing.T) {
	repo := new(MockUserRepository)
	svc := authservice.NewService(repo, password.NewHasher(bcrypt.MinCost), token.NewService("s", time.Hour), logger.NewNop())
	reg := axeRegistration()
	reg.Password = strings.Repeat("é", 72)

	_, err := svc.Register(context.Background(), reg)

	// Nunca chega ao bcrypt.ErrPasswordTooLong (500).
	assert.IsType(t, &apperror.ValidationError{}, err)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// --- Testes para Login ---

func TestLogin_Success(t *testing.T) {
	d := newDeps()
	stored := domain.User{ID: 4, Email: "axe@g.com", PasswordHash: "h", Role: domain.RoleAdmin}
	issued := domain.Token{AccessToken: "jwt", ExpiresIn: 3600}

	d.repo.On("FindByEmail", mock.Anything, "axe@g.com").Return(stored, true, nil)
	d.hasher.On("Verify", "123", "h").Return(true)
	d.tokens.On("Issue", int64(4), fixedNow).Return(issued, nil)

	user, tok, err := d.svc.Login(context.Background(), "axe@g.com", "123")

	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)
	assert.Equal(t, "jwt", tok.AccessToken)
	assert.Equal(t, 3600, tok.ExpiresIn)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	d := newDeps()

	d.repo.On("FindByEmail", mock.Anything, "ghost@g.com").Return(domain.User{}, false, nil)
	d.repo.On("FindByEmail", mock.Anything, "axe@g.com").Return(domain.User{ID: 4, PasswordHash: "h"}, true, nil)
	d.hasher.On("Hash", mock.Anything).Return("dummy-hash", nil)
	d.hasher.On("Verify", "123", "dummy-hash").Return(false)
	d.hasher.On("Verify", "1234", "h").Return(false)

	_, _, errUnknown := d.svc.Login(context.Background(), "ghost@g.com", "123")
	_, _, errWrong := d.svc.Login(context.Background(), "axe@g.com", "1234")

	require.True(t, apperror.IsUnauthorized(errUnknown))
	require.True(t, apperror.IsUnauthorized(errWrong))

	s1, b1 := apperror.ToResponse(errUnknown)
	s2, b2 := apperror.ToResponse(errWrong)
	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)

	// O caminho de e-mail inexistente também executa uma verificação bcrypt.
	d.hasher.AssertCalled(t, "Verify", "123", "dummy-hash")
	d.tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailFallsBackWhenDummyHashFails(t *testing.T) {
	d := newDeps()

	d.repo.On("FindByEmail", mock.Anything, "ghost@g.com").Return(domain.User{}, false, nil)
	d.hasher.On("Hash", mock.Anything).Return("", errors.New("rng exhausted"))
	d.hasher.On("Verify", "123", password.FallbackHash).Return(false)

	_, _, err := d.svc.Login(context.Background(), "ghost@g.com", "123")

	assert.True(t, apperror.IsUnauthorized(err))
	d.hasher.AssertCalled(t, "Verify", "123", password.FallbackHash)
	d.hasher.AssertNotCalled(t, "Verify", "123", "")
}

func TestLogin_TokenIssueFailureFailsClosed(t *testing.T) {
	d := newDeps()

	d.repo.On("FindByEmail", mock.Anything, "axe@g.com").Return(domain.User{ID: 4, PasswordHash: "h"}, true, nil)
	d.hasher.On("Verify", "123", "h").Return(true)
	d.tokens.On("Issue", int64(4), fixedNow).Return(domain.Token{}, token.ErrInvalidLifetime)

	_, tok, err := d.svc.Login(context.Background(), "axe@g.com", "123")

	assert.True(t, apperror.IsUnauthorized(err))
	assert.Empty(t, tok.AccessToken)
}

func TestLogin_RepositoryError(t *testing.T) {
	d := newDeps()
	dbErr := apperror.NewDBError("falha", errors.New("conn refused"))

	d.repo.On("FindByEmail", mock.Anything, "axe@g.com").Return(domain.User{}, false, dbErr)

	_, _, err := d.svc.Login(context.Background(), "axe@g.com", "123")

	assert.IsType(t, &apperror.InternalError{}, err)
}

// --- Fluxo completo com bcrypt e JWT reais ---

func TestRegisterThenLogin_RealHasherAndTokens(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher(bcrypt.MinCost)
	tokens := token.NewService("test-secret", time.Hour)
	svc := authservice.NewService(repo, hasher, tokens, logger.NewNop()).
		WithClock(func() time.Time { return fixedNow })

	var saved domain.User
	repo.On("FindByEmail", mock.Anything, "axe@g.com").Return(domain.User{}, false, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.User)
		saved.ID = 1
	}).Return(domain.User{ID: 1, Name: "Axe", Email: "axe@g.com", Role: domain.RoleAdmin}, nil).Once()

	_, err := svc.Register(context.Background(), axeRegistration())
	require.NoError(t, err)
	assert.NotEqual(t, "123", saved.PasswordHash)

	repo.On("FindByEmail", mock.Anything, "axe@g.com").Return(saved, true, nil)

	user, tok, err := svc.Login(context.Background(), "axe@g.com", "123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, 3600, tok.ExpiresIn)

	_, _, err = svc.Login(context.Background(), "axe@g.com", "1234")
	assert.True(t, apperror.IsUnauthorized(err))

	// O token emitido abre o gate de autenticação.
	repo.On("FindByID", mock.Anything, int64(1)).Return(saved, true, nil)
	ac, err := svc.Authenticate(context.Background(), "Bearer "+tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, ac.Role())
}

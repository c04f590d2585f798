package authservice_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gocats/internal/domain"
)

// MockUserRepository é uma implementação mock da interface domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (domain.User, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockHasher substitui o bcrypt nos testes de fluxo.
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Verify(plaintext, hash string) bool {
	args := m.Called(plaintext, hash)
	return args.Bool(0)
}

// MockTokenService substitui o serviço JWT.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(userID int64, now time.Time) (domain.Token, error) {
	args := m.Called(userID, now)
	return args.Get(0).(domain.Token), args.Error(1)
}

func (m *MockTokenService) Verify(tokenString string, now time.Time) (int64, error) {
	args := m.Called(tokenString, now)
	return args.Get(0).(int64), args.Error(1)
}

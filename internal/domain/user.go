package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no sistema.
// O hash da senha nunca sai desta struct: respostas usam sempre UserDTO.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleUser  UserRole = "User"
)

// Valid informa se o papel é um dos valores conhecidos.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserDTO é a representação pública do usuário (allowlist explícita de campos).
type UserDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToDTO copia apenas os campos públicos do usuário.
func (u User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string   `json:"name" validate:"required,max=255"`
	Email    string   `json:"email" validate:"required,max=255,email"`
	Password string   `json:"password" validate:"required,bcryptmax"`
	Role     UserRole `json:"role" validate:"required,oneof=Admin User"`
}

// UserLogin representa o payload de entrada para o login.
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse envolve um único usuário ({"user": {...}}), usado no registro e em /users/me.
type UserResponse struct {
	User UserDTO `json:"user"`
}

// LoginResponse é o corpo de resposta de POST /auth/login.
type LoginResponse struct {
	User  UserDTO       `json:"user"`
	Token TokenResponse `json:"token"`
}

// UserRepository define o contrato de persistência para a entidade User.
// FindByEmail e FindByID devolvem found=false (sem erro) quando o usuário não existe.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	FindByID(ctx context.Context, id int64) (User, bool, error)
	FindAll(ctx context.Context) ([]User, error)
}

package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/database"
	"gocats/internal/pkg/logger"
)

// emailConstraint é o nome da restrição UNIQUE criada pela migração de users.
const emailConstraint = "users_email_key"

const (
	insertSQL = `INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
                 VALUES ($1, $2, $3, $4, $5, $6)
                 RETURNING id, created_at, updated_at`

	selectColumns = `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users`
)

// UserRepository implementa a interface domain.UserRepository sobre PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo usuário. O ID e os timestamps vêm do banco.
// Violação do UNIQUE de email vira AlreadyExistsError: é o resultado esperado
// quando dois registros concorrentes passam pela pré-checagem.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctxTimeout, insertSQL,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		now,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err, emailConstraint) {
			r.logger.Info("Email já cadastrado (violação de unicidade).", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewAlreadyExistsError(apperror.MsgAlreadyExists, err)
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail (comparação exata).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	return r.findOne(ctx, selectColumns+` WHERE email = $1`, email)
}

// FindByID busca um usuário pelo identificador numérico.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.User, bool, error) {
	return r.findOne(ctx, selectColumns+` WHERE id = $1`, id)
}

// findOne executa a consulta e trata ausência como found=false, sem erro.
func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (domain.User, bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var user domain.User
	err := r.DB.QueryRowContext(ctxTimeout, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug("Usuário não encontrado.", nil)
		return domain.User{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, false, apperror.NewDBError("falha ao buscar usuário", err)
	}

	return user, true, nil
}

// FindAll devolve todos os usuários ordenados por ID.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectColumns+` ORDER BY id`)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de usuários.", err)
		return nil, apperror.NewDBError("falha ao listar usuários", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			r.logger.Error("Falha ao mapear usuário na iteração de FindAll.", err)
			return nil, apperror.NewDBError("falha ao mapear usuários", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de usuários.", err)
		return nil, apperror.NewDBError("erro após iteração de usuários", err)
	}

	r.logger.Debug("FindAll de usuários concluído.", map[string]interface{}{"total": len(users)})
	return users, nil
}

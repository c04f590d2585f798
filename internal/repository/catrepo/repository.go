package catrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/cache"
	"gocats/internal/pkg/logger"
)

// Define a chave de cache para gatos.
const catCacheKey = "cat:%d"

const catColumns = `id, name, age, breed, created_at, updated_at`

// CatRepository implementa a interface domain.CatRepository.
// Leituras por ID usam Cache-Aside no Redis; escritas invalidam a chave.
type CatRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewCatRepository cria e retorna uma nova instância do Repositório de Gatos.
func NewCatRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *CatRepository {
	return &CatRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// scanner é satisfeito por *sql.Row e *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCat(s scanner) (domain.Cat, error) {
	var cat domain.Cat
	err := s.Scan(&cat.ID, &cat.Name, &cat.Age, &cat.Breed, &cat.CreatedAt, &cat.UpdatedAt)
	return cat, err
}

// Create insere um novo gato no banco de dados.
func (r *CatRepository) Create(ctx context.Context, cat domain.Cat) (domain.Cat, error) {
	r.logger.Debug("Iniciando Create de gato no repositório.", map[string]interface{}{"name": cat.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	query := `
        INSERT INTO cats (name, age, breed, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + catColumns

	created, err := scanCat(r.DB.QueryRowContext(ctxTimeout, query, cat.Name, cat.Age, cat.Breed, now, now))
	if err != nil {
		r.logger.Error("Falha ao inserir gato no DB.", err)
		return domain.Cat{}, apperror.NewDBError("Falha ao criar gato", err)
	}

	r.logger.Info("Gato criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// FindByID busca um gato pelo ID, utilizando a estratégia Cache-Aside.
func (r *CatRepository) FindByID(ctx context.Context, id int64) (domain.Cat, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(catCacheKey, id)

	// Cache HIT devolve direto; falha do Redis não derruba a leitura.
	cached, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		var cat domain.Cat
		if json.Unmarshal([]byte(cached), &cat) == nil {
			r.logger.Debug("Gato servido do cache.", map[string]interface{}{"id": id})
			return cat, nil
		}
		r.logger.Warn("Entrada de cache corrompida, consultando o DB.", map[string]interface{}{"key": key})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	query := `SELECT ` + catColumns + ` FROM cats WHERE id = $1`
	cat, err := scanCat(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Gato não encontrado.", map[string]interface{}{"id": id})
		return domain.Cat{}, apperror.NewNotFoundError(fmt.Sprintf("Cat with id %d not found", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar gato no DB.", err)
		return domain.Cat{}, apperror.NewDBError("Falha ao buscar gato", err)
	}

	if payload, err := json.Marshal(cat); err == nil {
		if err := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar gato no cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	return cat, nil
}

// FindAll busca todos os gatos ordenados por ID.
func (r *CatRepository) FindAll(ctx context.Context) ([]domain.Cat, error) {
	r.logger.Debug("Iniciando FindAll de gatos no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+catColumns+` FROM cats ORDER BY id`)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de gatos.", err)
		return nil, apperror.NewDBError("Falha ao buscar todos os gatos", err)
	}
	defer rows.Close()

	cats := make([]domain.Cat, 0)
	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear gato na iteração de FindAll.", err)
			return nil, apperror.NewDBError("Falha ao mapear gatos do DB", err)
		}
		cats = append(cats, cat)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de gatos.", err)
		return nil, apperror.NewDBError("Erro após iteração de gatos", err)
	}

	r.logger.Info("FindAll de gatos concluído.", map[string]interface{}{"total_cats": len(cats)})
	return cats, nil
}

// Update atualiza um gato existente e invalida sua entrada no cache.
func (r *CatRepository) Update(ctx context.Context, cat domain.Cat) (domain.Cat, error) {
	r.logger.Debug("Iniciando Update de gato no repositório.", map[string]interface{}{"id": cat.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE cats
        SET name = $1, age = $2, breed = $3, updated_at = $4
        WHERE id = $5
        RETURNING ` + catColumns

	updated, err := scanCat(r.DB.QueryRowContext(ctxTimeout, query, cat.Name, cat.Age, cat.Breed, time.Now().UTC(), cat.ID))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Gato não encontrado para atualização.", map[string]interface{}{"id": cat.ID})
		return domain.Cat{}, apperror.NewNotFoundError(fmt.Sprintf("Cat with id %d not found", cat.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar gato no DB.", err)
		return domain.Cat{}, apperror.NewDBError("Falha ao atualizar gato", err)
	}

	r.invalidate(ctxTimeout, cat.ID)
	r.logger.Info("Gato atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove um gato pelo ID e invalida sua entrada no cache.
func (r *CatRepository) Delete(ctx context.Context, id int64) error {
	r.logger.Debug("Iniciando Delete de gato no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar gato do DB.", err)
		return apperror.NewDBError("Falha ao deletar gato", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após Delete.", err)
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	if rowsAffected == 0 {
		r.logger.Info("Gato não encontrado para exclusão.", map[string]interface{}{"id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Cat with id %d not found", id))
	}

	r.invalidate(ctxTimeout, id)
	r.logger.Info("Gato deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (r *CatRepository) invalidate(ctx context.Context, id int64) {
	key := fmt.Sprintf(catCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Falha ao invalidar cache do gato.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

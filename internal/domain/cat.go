package domain

import (
	"context"
	"time"
)

// Cat representa o recurso secundário gerenciado pela API.
type Cat struct {
	ID        int64
	Name      string
	Age       *float64 // opcional (coluna decimal nula)
	Breed     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatDTO é a representação pública de um gato.
type CatDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       *float64  `json:"age,omitempty"`
	Breed     string    `json:"breed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToDTO copia os campos públicos do gato.
func (c Cat) ToDTO() CatDTO {
	return CatDTO{
		ID:        c.ID,
		Name:      c.Name,
		Age:       c.Age,
		Breed:     c.Breed,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CatRequest é o payload de criação e atualização de um gato.
type CatRequest struct {
	Name  string   `json:"name" validate:"required,max=255"`
	Age   *float64 `json:"age" validate:"omitempty,gte=0,lt=1000"`
	Breed string   `json:"breed" validate:"max=255"`
}

// CatResponse envolve um único gato nas respostas ({"cat": {...}}).
type CatResponse struct {
	Cat CatDTO `json:"cat"`
}

// DeleteResponse é o corpo de resposta de DELETE /cats/{id}.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// CatRepository define o contrato de persistência para a entidade Cat.
type CatRepository interface {
	Create(ctx context.Context, cat Cat) (Cat, error)
	FindByID(ctx context.Context, id int64) (Cat, error)
	FindAll(ctx context.Context) ([]Cat, error)
	Update(ctx context.Context, cat Cat) (Cat, error)
	Delete(ctx context.Context, id int64) error
}

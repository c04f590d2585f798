package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes é o limite do bcrypt; bytes além disso fazem GenerateFromPassword falhar.
const MaxBytes = 72

// FallbackHash é um hash bcrypt de custo 10 bem formado. Serve de alvo para
// Verify quando não há hash real a comparar; nenhuma senha o satisfaz na prática.
const FallbackHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"

// Hasher gera e confere hashes de senha com bcrypt.
// O sal é aleatório a cada chamada: dois hashes da mesma senha nunca devem ser
// comparados por igualdade, apenas via Verify.
type Hasher struct {
	cost int
}

// NewHasher cria um Hasher com o custo informado. Custos fora do intervalo do
// bcrypt caem para bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash gera o hash da senha em texto puro.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: falha ao gerar hash: %w", err)
	}
	return string(hashed), nil
}

// Verify compara a senha com o hash em tempo constante.
// Hash malformado, vazio ou truncado resulta em false, nunca em erro.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

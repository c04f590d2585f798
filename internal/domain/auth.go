package domain

import "time"

// Token é a credencial bearer emitida no login. Não é persistida no servidor.
type Token struct {
	AccessToken string
	ExpiresIn   int // segundos
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenResponse é a parte pública do token devolvida ao cliente.
type TokenResponse struct {
	ExpiresIn   int    `json:"expiresIn"`
	AccessToken string `json:"accessToken"`
}

// ToResponse copia apenas os campos públicos do token.
func (t Token) ToResponse() TokenResponse {
	return TokenResponse{ExpiresIn: t.ExpiresIn, AccessToken: t.AccessToken}
}

// AuthContext é a identidade resolvida de uma requisição autenticada.
// Vive apenas durante a requisição; nunca é compartilhada ou cacheada.
type AuthContext struct {
	User User
}

// Role devolve o papel do usuário autenticado.
func (a AuthContext) Role() UserRole {
	return a.User.Role
}

package middleware

import (
	"context"
	"net/http"

	"gocats/internal/domain"
	apperror "gocats/internal/errors"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/response"
	"gocats/internal/service/authservice"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Context Keys devem ser não-exportadas na prática e de um tipo único.
type ContextKey int

const authContextKey ContextKey = iota

// Authenticator é o gate 1: resolve o cabeçalho Authorization em um AuthContext.
type Authenticator interface {
	Authenticate(ctx context.Context, authHeader string) (domain.AuthContext, error)
}

// Protect compõe os dois gates em ordem fixa: autenticação e depois autorização.
// Rotas protegidas usam apenas este middleware, então o gate de papel nunca
// roda sem um AuthContext resolvido. Sem papéis, basta estar autenticado.
func Protect(authn Authenticator, log logger.Logger, roles ...domain.UserRole) func(http.Handler) http.Handler {
	required := append([]domain.UserRole(nil), roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, err := authn.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				// Falhas de infraestrutura já saem em Error via response.Error.
				if apperror.IsUnauthorized(err) {
					log.Info("Acesso negado pelo gate de autenticação.", map[string]interface{}{"path": r.URL.Path})
				}
				response.Error(w, r, err, log)
				return
			}

			if err := authservice.Authorize(required, &ac); err != nil {
				log.Info("Acesso negado pelo gate de papel.", map[string]interface{}{
					"user_id": ac.User.ID,
					"role":    string(ac.Role()),
					"path":    r.URL.Path,
				})
				response.Error(w, r, err, log)
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey, &ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthContextFrom extrai o AuthContext anexado por Protect. Devolve nil fora de rotas protegidas.
func AuthContextFrom(ctx context.Context) *domain.AuthContext {
	ac, _ := ctx.Value(authContextKey).(*domain.AuthContext)
	return ac
}

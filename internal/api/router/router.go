package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gocats/internal/api/auth"
	"gocats/internal/api/cat"
	"gocats/internal/api/user"
	"gocats/internal/domain"
	"gocats/internal/pkg/cache"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/middleware"
)

// Deps reúne os Handlers e a infraestrutura já inicializados pelo main.
type Deps struct {
	AuthHandler   *auth.Handler
	CatHandler    *cat.Handler
	UserHandler   *user.Handler
	Authenticator middleware.Authenticator
	RateLimitDB   cache.Client
	RateLimit     int
	RatePeriod    time.Duration
	Logger        logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// Toda rota protegida passa por middleware.Protect, que roda os dois gates em ordem.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Sem RealIP: o limiter chaveia no RemoteAddr da conexão, que o cliente não forja.
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)

	// --- 1. Health Check ---
	r.Get("/ping", PingHandler)

	authenticated := middleware.Protect(d.Authenticator, d.Logger)
	adminOnly := middleware.Protect(d.Authenticator, d.Logger, domain.RoleAdmin)

	// --- 2. Autenticação (pública, com rate limit) ---
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimiter(d.RateLimitDB, d.RateLimit, d.RatePeriod, d.Logger))
		r.Post("/register", d.AuthHandler.Register)
		r.Post("/login", d.AuthHandler.Login)
	})

	// --- 3. Usuários ---
	r.Route("/users", func(r chi.Router) {
		r.With(adminOnly).Get("/", d.UserHandler.List)
		r.With(authenticated).Get("/me", d.UserHandler.Me)
	})

	// --- 4. Gatos ---
	r.Route("/cats", func(r chi.Router) {
		r.With(authenticated).Get("/", d.CatHandler.List)
		r.With(authenticated).Get("/{id}", d.CatHandler.Get)
		r.With(adminOnly).Post("/", d.CatHandler.Create)
		r.With(adminOnly).Put("/{id}", d.CatHandler.Update)
		r.With(adminOnly).Delete("/{id}", d.CatHandler.Delete)
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

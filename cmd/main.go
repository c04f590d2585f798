package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gocats/config"
	"gocats/internal/pkg/cache"
	"gocats/internal/pkg/database"
	"gocats/internal/pkg/logger"
	"gocats/internal/pkg/password"
	"gocats/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"gocats/internal/api/auth"
	"gocats/internal/api/cat"
	"gocats/internal/api/request"
	"gocats/internal/api/router"
	"gocats/internal/api/user"
	"gocats/internal/repository/catrepo"
	"gocats/internal/repository/userrepo"
	"gocats/internal/service/authservice"
	"gocats/internal/service/catservice"
	"gocats/internal/service/userservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Sem .env seguimos só com o ambiente do sistema (ex: Docker).
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "GoCats: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}
	if envErr != nil {
		log.Warn("Arquivo .env não encontrado. Usando apenas o ambiente do sistema.", nil)
	}
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 1. Conexão com Recursos de Infraestrutura
	ctx := context.Background()

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Sem Redis o serviço sobe: cache e rate limit degradam.
	cacheClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis indisponível; cache e rate limit em modo degradado.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", nil)
	}
	defer cacheClient.Close()

	// 2. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	catRepo := catrepo.NewCatRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)

	hasher := password.NewHasher(cfg.BcryptCost)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenLifetime())

	authSvc := authservice.NewService(userRepo, hasher, tokenSvc, log)
	userSvc := userservice.NewService(userRepo, log)
	catSvc := catservice.NewService(catRepo, log)

	decoder := request.NewDecoder()
	handler := router.NewRouter(router.Deps{
		AuthHandler:   auth.NewHandler(authSvc, decoder, log),
		CatHandler:    cat.NewHandler(catSvc, decoder, log),
		UserHandler:   user.NewHandler(userSvc, log),
		Authenticator: authSvc,
		RateLimitDB:   cacheClient,
		RateLimit:     cfg.RateLimitMaxRequests,
		RatePeriod:    cfg.RateLimitPeriod,
		Logger:        log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 3. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoCats ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}

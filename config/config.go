package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config armazena todas as configurações do GoCats.
// É carregada uma única vez no início do processo e repassada aos construtores;
// nenhum componente lê variáveis de ambiente por conta própria.
type Config struct {
	// Geral
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `env:"DATABASE_URL,required,notEmpty"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`

	// Cache (Redis)
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Segurança (JWT + bcrypt)
	JWTSecretKey string `env:"JWT_SECRET_KEY,required"`
	// JWTExpirationTime é o tempo de vida do token em segundos (exposto como expiresIn).
	JWTExpirationTime int `env:"JWT_EXPIRATION_TIME" envDefault:"3600"`
	BcryptCost        int `env:"BCRYPT_COST" envDefault:"10"`

	// Rate Limiting de /auth/login e /auth/register
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"6"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD" envDefault:"60s"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente e as valida.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: falha ao ler variáveis de ambiente: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejeita combinações que deixariam o núcleo de autenticação inseguro ou inoperante.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY não pode ser vazio"))
	}
	if c.JWTExpirationTime <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRATION_TIME deve ser positivo (recebido %d)", c.JWTExpirationTime))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST deve estar entre %d e %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RateLimitMaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS deve ser positivo"))
	}
	if c.RateLimitPeriod <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PERIOD deve ser positivo"))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT deve ser positivo"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: configuração inválida: %w", errors.Join(errs...))
	}
	return nil
}

// TokenLifetime devolve o tempo de vida do token como time.Duration.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWTExpirationTime) * time.Second
}

// IsDevelopment informa se o serviço roda em modo de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// MigrateConfig é o subconjunto usado por cmd/migrate, que não precisa do segredo JWT.
type MigrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENV" envDefault:"development"`
}

// LoadMigrateConfig carrega apenas o necessário para rodar as migrações.
func LoadMigrateConfig() (*MigrateConfig, error) {
	cfg := &MigrateConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: falha ao ler variáveis de ambiente: %w", err)
	}
	return cfg, nil
}

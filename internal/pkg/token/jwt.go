package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gocats/internal/domain"
)

// ErrInvalidToken é o único erro devolvido por Verify. O motivo real
// (assinatura, expiração, claims malformadas) não é exposto ao chamador.
var ErrInvalidToken = errors.New("token inválido")

// ErrInvalidLifetime é devolvido por Issue quando o tempo de vida configurado não é positivo.
var ErrInvalidLifetime = errors.New("tempo de vida do token deve ser positivo")

const issuer = "GoCats-API"

// CustomClaims define as informações que armazenamos no JWT.
// UserID é o sujeito; RegisteredClaims carrega iat/exp/sub.
type CustomClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Service emite e valida tokens HS256 assinados com o segredo do processo.
type Service struct {
	secretKey []byte
	lifetime  time.Duration
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, lifetime time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		lifetime:  lifetime,
	}
}

// Issue cria um novo JWT assinado para o usuário, com iat=now e exp=now+lifetime.
func (s *Service) Issue(userID int64, now time.Time) (domain.Token, error) {
	if s.lifetime <= 0 {
		return domain.Token{}, ErrInvalidLifetime
	}
	if len(s.secretKey) == 0 {
		return domain.Token{}, errors.New("segredo de assinatura vazio")
	}

	issuedAt := now.Truncate(time.Second)
	expiresAt := issuedAt.Add(s.lifetime)

	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return domain.Token{}, fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return domain.Token{
		AccessToken: signed,
		ExpiresIn:   int(s.lifetime / time.Second),
		IssuedAt:    issuedAt,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify valida o token no instante now e devolve o ID do usuário.
// Qualquer falha resulta em ErrInvalidToken.
func (s *Service) Verify(tokenString string, now time.Time) (int64, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	// Tempo de vida codificado precisa ser positivo, mesmo que a assinatura seja válida.
	if claims.IssuedAt == nil || !claims.ExpiresAt.Time.After(claims.IssuedAt.Time) {
		return 0, ErrInvalidToken
	}

	// O sujeito registrado precisa bater com o ID da claim.
	if claims.Subject != strconv.FormatInt(claims.UserID, 10) || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

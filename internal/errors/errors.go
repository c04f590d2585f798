package errors

import (
	"errors"
	"fmt"
	"net/http"

	"gocats/internal/domain"
)

// AppError é a interface central para todos os erros customizados do GoCats.
// Error() é o texto para logs; Message() e Label() são o que o cliente pode ver.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION", "NOT_FOUND", "INTERNAL")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Message() string  // Mensagem segura para o corpo da resposta
	Label() string    // Rótulo HTTP opcional (campo "error" da resposta)
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Mensagens públicas fixas. Unauthorized precisa ser idêntica para todas as causas.
const (
	MsgUnauthorized  = "Unauthorized"
	MsgForbidden     = "Forbidden resource"
	MsgAlreadyExists = "User with that email already exists"
	MsgInternal      = "Internal server error"

	MsgTooManyRequests = "ThrottlerException: Too Many Requests"
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Message() string  { return e.Msg }
func (e *ValidationError) Label() string    { return http.StatusText(http.StatusBadRequest) }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Message() string  { return e.Msg }
func (e *NotFoundError) Label() string    { return http.StatusText(http.StatusNotFound) }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// AlreadyExistsError representa o conflito de registro (e-mail já cadastrado).
// O contrato público responde 400, não 409.
type AlreadyExistsError struct {
	Msg string
	Err error
}

func (e *AlreadyExistsError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *AlreadyExistsError) Category() string { return "ALREADY_EXISTS" }
func (e *AlreadyExistsError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *AlreadyExistsError) Message() string  { return e.Msg }
func (e *AlreadyExistsError) Label() string    { return http.StatusText(http.StatusBadRequest) }
func (e *AlreadyExistsError) Unwrap() error    { return e.Err }

// NewAlreadyExistsError cria um erro de conflito de unicidade.
func NewAlreadyExistsError(msg string, err error) AppError {
	return &AlreadyExistsError{Msg: msg, Err: err}
}

// UnauthorizedError cobre credenciais inválidas e token ausente, inválido ou expirado.
// Reason vai apenas para os logs; o cliente recebe sempre MsgUnauthorized.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Reason) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Message() string  { return MsgUnauthorized }
func (e *UnauthorizedError) Label() string    { return "" }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro 401. O motivo nunca chega ao cliente.
func NewUnauthorizedError(reason string) AppError {
	return &UnauthorizedError{Reason: reason}
}

// ForbiddenError representa um usuário autenticado sem o papel exigido.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Reason) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Message() string  { return MsgForbidden }
func (e *ForbiddenError) Label() string    { return http.StatusText(http.StatusForbidden) }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um erro 403.
func NewForbiddenError(reason string) AppError {
	return &ForbiddenError{Reason: reason}
}

// TooManyRequestsError representa o estouro da janela do rate limiter.
type TooManyRequestsError struct{}

func (e *TooManyRequestsError) Error() string    { return "Limite de requisições excedido" }
func (e *TooManyRequestsError) Category() string { return "RATE_LIMITED" }
func (e *TooManyRequestsError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *TooManyRequestsError) Message() string  { return MsgTooManyRequests }
func (e *TooManyRequestsError) Label() string    { return http.StatusText(http.StatusTooManyRequests) }
func (e *TooManyRequestsError) Unwrap() error    { return nil }

// NewTooManyRequestsError cria um erro 429.
func NewTooManyRequestsError() AppError {
	return &TooManyRequestsError{}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Erro Interno: %s", e.Msg)
	}
	return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Message() string  { return MsgInternal }
func (e *InternalError) Label() string    { return http.StatusText(http.StatusInternalServerError) }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// --- Helpers de classificação ---

// IsUnauthorized informa se algum erro na cadeia é um UnauthorizedError.
func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// IsAlreadyExists informa se algum erro na cadeia é um AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var target *AlreadyExistsError
	return errors.As(err, &target)
}

// --- Helper para o Handler (Tradução Final) ---

// ToResponse traduz qualquer erro para o status HTTP e o corpo público da resposta.
// Erros que não implementam AppError viram um 500 genérico, sem detalhes internos.
func ToResponse(err error) (int, domain.ErrorResponse) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), domain.ErrorResponse{
			StatusCode: appErr.HTTPStatus(),
			Message:    appErr.Message(),
			Error:      appErr.Label(),
		}
	}

	return http.StatusInternalServerError, domain.ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    MsgInternal,
		Error:      http.StatusText(http.StatusInternalServerError),
	}
}

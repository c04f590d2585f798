package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// Error só é preenchido quando há um rótulo HTTP a expor (ex.: "Bad Request").
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

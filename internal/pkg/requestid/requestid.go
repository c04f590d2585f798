// Package requestid guarda o ID de correlação da requisição no contexto.
// Fica fora de middleware para que response também possa lê-lo.
package requestid

import "context"

type ctxKey struct{}

// With devolve um contexto derivado carregando o ID.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From devolve o ID anexado por With, ou "" se não houver.
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

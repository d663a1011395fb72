package branch

import (
	"context"
)

type contextKey string

const (
	// branchIDKey é a chave usada para armazenar o branch ID no contexto
	branchIDKey contextKey = "branch_id"
	// actorIDKey é a chave usada para armazenar o ID do usuário que executa a operação
	actorIDKey contextKey = "actor_id"
)

// SetBranchID define o branch ID no contexto
func SetBranchID(ctx context.Context, branchID string) context.Context {
	return context.WithValue(ctx, branchIDKey, branchID)
}

// GetBranchID obtém o branch ID do contexto
func GetBranchID(ctx context.Context) string {
	if branchID, ok := ctx.Value(branchIDKey).(string); ok {
		return branchID
	}
	return ""
}

// SetActorID define o ID do ator no contexto
func SetActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// GetActorID obtém o ID do ator do contexto
func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(actorIDKey).(string); ok {
		return actorID
	}
	return ""
}

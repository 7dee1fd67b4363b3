package api

import "context"

type contextKey string

const clientIDContextKey contextKey = "client_id"

// ClientIDFromContext extracts the client id from context
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDContextKey).(string)
	return id
}

// ContextWithClientID adds the client id to context
func ContextWithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey, clientID)
}

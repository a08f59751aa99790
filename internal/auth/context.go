package auth

import (
	"context"
	"net/http"
)

// ContextKey is the type used for context keys
type ContextKey string

// ContextKeyToken is the key for the account-service bearer token in the
// request context.
const ContextKeyToken ContextKey = "token"

// WithToken returns a copy of ctx carrying the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ContextKeyToken, token)
}

// GetToken retrieves the bearer token from the request context. An empty
// string means the request is anonymous.
func GetToken(r *http.Request) string {
	if token, ok := r.Context().Value(ContextKeyToken).(string); ok {
		return token
	}
	return ""
}

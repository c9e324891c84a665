package api

import "context"

type contextKey string

const tokenContextKey contextKey = "bearer_token"

// WithToken returns a context carrying the session's bearer token.
// The client attaches it to every backend request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext retrieves the bearer token, or "" when the caller is
// unauthenticated.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey).(string); ok {
		return token
	}
	return ""
}

// Package middleware holds the HTTP middleware chain: request IDs,
// request-scoped logging, Prometheus metrics, rate limiting, and session
// handling.
package middleware

type contextKey string

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

const loggerContextKey contextKey = "logger"

// WithRequestLogger creates middleware that injects a request-scoped
// logger into the context. The logger carries request metadata and the
// user id when the session middleware ran first.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := baseLogger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			if requestID := GetRequestID(r.Context()); requestID != "" {
				requestLogger = requestLogger.With(slog.String("request_id", requestID))
			}

			if sess := GetSession(r.Context()); sess != nil {
				requestLogger = requestLogger.With(
					slog.String("user_id", strconv.FormatInt(sess.User.ID, 10)))
			}

			ctx := context.WithValue(r.Context(), loggerContextKey, requestLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLogger retrieves the request-scoped logger from the context.
// Falls back to slog.Default() when none was injected.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

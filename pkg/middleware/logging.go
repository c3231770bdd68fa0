package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewLoggingMiddleware logs every request with duration and status.
func NewLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger.Info("request started", appendLoggerFields(r,
				"method", r.Method,
				"path", r.URL.Path,
				"peer", r.RemoteAddr,
			)...)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if rec.status >= http.StatusInternalServerError {
				logger.Error("request failed", appendLoggerFields(r,
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"duration", duration.String(),
					"duration_ms", duration.Milliseconds(),
				)...)
			} else {
				logger.Info("request completed", appendLoggerFields(r,
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"duration", duration.String(),
					"duration_ms", duration.Milliseconds(),
				)...)
			}
		})
	}
}

func appendLoggerFields(r *http.Request, base ...any) []any {
	if requestID, ok := RequestIDFromContext(r.Context()); ok && requestID != "" {
		base = append(base, "request_id", requestID)
	}
	return base
}

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/medassist/symptomchecker/internal/common"
	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/metrics"
	"github.com/medassist/symptomchecker/internal/server/users"
)

type ctxKey string

const (
	userKey      ctxKey = "user"
	requestIDKey ctxKey = "requestID"
)

// apiKeyHeader carries the bearer credential on every protected request.
const apiKeyHeader = "X-API-Key"

func userFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(userKey).(*users.User)
	return user, ok
}

// Authenticate resolves the X-API-Key header to a user identity and stores
// it in the request context. Absent or unknown keys yield 401; only store
// failures yield 500.
func (h *Handlers) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(apiKeyHeader)
		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}

		user, err := h.users.ResolveAPIKey(r.Context(), apiKey)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			h.logger.Error(r.Context(), "api key resolution error", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// RequestID attaches an id to every request, honoring an inbound
// X-Request-ID header, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Instrument logs every request and records its latency in the Prometheus
// histogram, labelled with the matched chi route pattern.
func Instrument(logger logging.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := routePattern(r)
			code := strconv.Itoa(ww.Status())

			m.RequestDuration.WithLabelValues(r.Method, route, code).Observe(elapsed.Seconds())

			logger.Info(r.Context(), "request handled",
				"request_id", requestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

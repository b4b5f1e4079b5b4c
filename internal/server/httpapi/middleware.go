package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/metrics"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

type ctxKey int

const userCtxKey ctxKey = iota

// UserFromContext returns the user attached by the auth middleware.
func UserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userCtxKey).(*models.User)
	if !ok || user == nil {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware guards protected routes. It extracts the bearer token,
// resolves it to a user, and attaches the user to the request context. Any
// failure is reported as a single 401 without distinguishing the cause.
func AuthMiddleware(auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				writeMessage(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			token := strings.TrimPrefix(header, common.BearerPrefix)

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// LoggingMiddleware emits one structured log line per request with method,
// path, status, and duration.
func LoggingMiddleware(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// MetricsMiddleware records the request counter and latency histogram.
func MetricsMiddleware(collector *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			collector.RecordRequest(r.Method, rec.statusCode)
			collector.RecordLatency(time.Since(start))
		})
	}
}

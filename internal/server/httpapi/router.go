// Package httpapi exposes the REST API: user signup/login/session management
// and the per-user contact list, plus the metrics endpoint.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/metrics"
)

// RouterConfig bundles the dependencies of the HTTP router.
type RouterConfig struct {
	Users    UserProvider
	Contacts ContactProvider
	Logger   logging.Logger

	// Limiter throttles the credential endpoints; nil disables throttling.
	Limiter *RateLimiter

	// Collector records request metrics; Registry backs GET /metrics.
	// Both may be nil to disable the metrics surface.
	Collector *metrics.Collector
	Registry  *prometheus.Registry
}

// NewRouter assembles the chi router: request logging and metrics around
// everything, rate limiting on the credential endpoints, and the auth
// middleware in front of every protected route.
func NewRouter(cfg RouterConfig) http.Handler {
	users := NewUserHandler(cfg.Users)
	contactsH := NewContactHandler(cfg.Contacts)

	r := chi.NewRouter()

	r.Use(LoggingMiddleware(cfg.Logger))
	if cfg.Collector != nil {
		r.Use(MetricsMiddleware(cfg.Collector))
	}

	throttled := func(h http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return h
		}
		return cfg.Limiter.Middleware(h)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Method(http.MethodPost, "/signup", throttled(users.SignUp))
			r.Method(http.MethodPost, "/login", throttled(users.Login))

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(cfg.Users))
				r.Post("/logout", users.Logout)
				r.Get("/current", users.Current)
				r.Patch("/", users.UpdateSubscription)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Users))
			r.Get("/", contactsH.List)
			r.Post("/", contactsH.Create)
			r.Get("/{id}", contactsH.Get)
			r.Put("/{id}", contactsH.Update)
			r.Delete("/{id}", contactsH.Delete)
			r.Patch("/{id}/favorite", contactsH.SetFavorite)
		})
	})

	if cfg.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Registry))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})

	return r
}

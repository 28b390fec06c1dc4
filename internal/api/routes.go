package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tepnology/sam-report/internal/pkg/httputil"
)

// SetupRoutes configures the router: open health check, bearer-gated report
// routes under /api.
func SetupRoutes(h *Handlers, cronSecret string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(requireBearer(cronSecret))
		r.Route("/reports/opportunities", func(r chi.Router) {
			r.Get("/export", h.ExportReport)
			r.Get("/export/send", h.ExportAndSend)
		})
	})

	return r
}

// requireBearer gates the report routes behind the scheduler's shared secret.
func requireBearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || secret == "" ||
				subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				httputil.Unauthorized(w, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

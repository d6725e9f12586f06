package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"go-chi-compute/internal/buildinfo"
	"go-chi-compute/internal/calculator"
	"go-chi-compute/internal/handlers"
	"go-chi-compute/internal/observability"
	"go-chi-compute/internal/processor"
)

// Services carries everything the router mounts. Nil domain handlers are
// skipped.
type Services struct {
	Calculator *calculator.Handler
	Processor  *processor.Handler
	Build      buildinfo.Info
	CORS       CORS
}

// CORS enables cross-origin access for browser clients when AllowedOrigins
// is non-empty.
type CORS struct {
	AllowedOrigins []string
	MaxAge         int
}

func NewRouter(s Services) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	if len(s.CORS.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", observability.RequestIDHeader},
			ExposedHeaders: []string{observability.RequestIDHeader},
			MaxAge:         s.CORS.MaxAge,
		}))
	}

	r.Get("/health", handlers.Health)
	r.Get("/version", versionHandler(s.Build))

	r.Handle("/metrics", observability.PrometheusHandler())

	if s.Calculator != nil {
		s.Calculator.RegisterRoutes(r)
	}
	if s.Processor != nil {
		s.Processor.RegisterRoutes(r)
	}

	return r
}

func versionHandler(info buildinfo.Info) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, info)
	}
}

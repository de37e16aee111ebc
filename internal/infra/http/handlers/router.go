package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/saint-brief/internal/infra/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	Brief          *BriefHandler
	Health         *HealthHandler
	SubmitLimiter  *middleware.RateLimiter
	// RequestLog desliga o log por requisição do chi (testes).
	RequestLog bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if cfg.RequestLog {
		r.Use(chimw.Logger)
	}
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	b := cfg.Brief
	r.Route("/brief", func(r chi.Router) {
		r.Post("/", b.Start)
		r.Get("/", b.Get)
		r.Delete("/", b.Clear)
		r.Put("/steps/{step}", b.ApplyStep)
		r.Get("/preview", b.Preview)
		r.Get("/scope-draft", b.ScopeDraft)
		r.Get("/export", b.Export)

		r.Group(func(r chi.Router) {
			if cfg.SubmitLimiter != nil {
				r.Use(cfg.SubmitLimiter.Middleware)
			}
			r.Post("/submit", b.Submit)
		})
	})

	r.Group(func(r chi.Router) {
		if cfg.SubmitLimiter != nil {
			r.Use(cfg.SubmitLimiter.Middleware)
		}
		r.Post("/sheets/init", b.InitSheet)
	})

	return r
}

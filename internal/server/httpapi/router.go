package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/metrics"
)

type Router struct {
	handlers *Handlers
	logger   logging.Logger
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

func NewRouter(h *Handlers, logger logging.Logger, m *metrics.Metrics, reg *prometheus.Registry) *Router {
	return &Router{
		handlers: h,
		logger:   logger,
		metrics:  m,
		registry: reg,
	}
}

// Setup assembles the REST surface. Auth endpoints get strict per-IP rate
// limits against credential stuffing; protected endpoints sit behind the
// API-key gate.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(Instrument(rt.logger, rt.metrics))

	r.Get("/", rt.handlers.Root)
	r.Get("/health", rt.handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))

	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/signup", rt.handlers.Signup)
		r.Post("/signin", rt.handlers.Signin)
	})

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(60, time.Minute))
		r.Use(rt.handlers.Authenticate)
		r.Post("/symptom-check", rt.handlers.SymptomCheck)
		r.Get("/symptom-history", rt.handlers.SymptomHistory)
	})

	return r
}

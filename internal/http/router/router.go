package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/auth"
	"github.com/straye-as/estimate-api/internal/config"
	"github.com/straye-as/estimate-api/internal/http/handler"
	"github.com/straye-as/estimate-api/internal/http/middleware"

	_ "github.com/straye-as/estimate-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	healthHandler   *handler.HealthHandler
	estimateHandler *handler.EstimateHandler
	generateHandler *handler.GenerateHandler
	exportHandler   *handler.ExportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	estimateHandler *handler.EstimateHandler,
	generateHandler *handler.GenerateHandler,
	exportHandler *handler.ExportHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		healthHandler:   healthHandler,
		estimateHandler: estimateHandler,
		generateHandler: generateHandler,
		exportHandler:   exportHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security, "/swagger/"))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health checks (liveness, database stats, readiness)
	r.Get("/health", rt.healthHandler.Health)
	r.Get("/health/db", rt.healthHandler.Database)
	r.Get("/health/ready", rt.healthHandler.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		if d := rt.cfg.Server.RequestTimeoutDuration(); d > 0 {
			r.Use(chimw.Timeout(d))
		}

		// Estimates
		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", rt.estimateHandler.List)
			r.Post("/", rt.estimateHandler.Save)
			r.Get("/defaults", rt.estimateHandler.Defaults)
			r.With(rt.rateLimiter.LimitGenerate).Post("/generate", rt.estimateHandler.GenerateAndSave)
			r.Get("/{id}", rt.estimateHandler.GetByID)
			r.Delete("/{id}", rt.estimateHandler.Delete)
		})

		// Stateless pipeline
		r.With(rt.rateLimiter.LimitGenerate).Post("/ai/generate", rt.generateHandler.Generate)
		r.Post("/pricing/preview", rt.generateHandler.PricingPreview)

		// Downloads
		r.Route("/export", func(r chi.Router) {
			r.Get("/bom/{id}", rt.exportHandler.BOM)
			r.Get("/pdf/{id}", rt.exportHandler.Proposal)
		})
	})

	return r
}

// Package api exposes the bot over HTTP: a JSON ask endpoint, a health
// check, and a minimal built-in chat page.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/flightqa/internal/bot"
	"github.com/yegors/flightqa/internal/config"
	"github.com/yegors/flightqa/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(botService *bot.Service, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(botService, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	router.Route("/api/v1", func(router chi.Router) {
		router.Post("/ask", r.handler.Ask)
		router.Get("/health", r.handler.GetHealth)
	})

	// Built-in chat page
	router.Get("/", r.handler.Home)

	return router
}

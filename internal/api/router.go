package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/maya/media-user-api/internal/api/handlers"
	"github.com/maya/media-user-api/internal/api/middleware"
	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/metrics"
	"github.com/maya/media-user-api/internal/service"
	"github.com/maya/media-user-api/internal/token"
)

func NewRouter(services *service.Services, issuer *token.Issuer, collector *metrics.Collector, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.Logging(logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Prometheus exposition
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	listHandler := handlers.NewListHandler(services.Lists)

	r.Route("/api/user", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(issuer, collector))

			r.Get("/me", authHandler.Me)

			r.Get("/favourites", listHandler.Get(domain.ListFavourites))
			r.Put("/favourites/{id}", listHandler.Add(domain.ListFavourites))
			r.Delete("/favourites/{id}", listHandler.Remove(domain.ListFavourites))

			r.Get("/history", listHandler.Get(domain.ListHistory))
			r.Put("/history/{id}", listHandler.Add(domain.ListHistory))
			r.Delete("/history/{id}", listHandler.Remove(domain.ListHistory))
		})
	})

	return r
}

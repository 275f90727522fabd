// internal/wire/wire.go
package wire

import (
	"net/http"

	"booking-service/internal/adaptor"
	"booking-service/internal/data/repository"
	"booking-service/internal/peer"
	"booking-service/internal/usecase"
	"booking-service/pkg/middleware"
	"booking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP router
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts every route
func Wiring(repo *repository.Repository, peers peer.Clients, notifiers usecase.Notifiers, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, peers, notifiers, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	if config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst), logger))
	}

	prefix := config.App.APIPrefix
	if prefix == "" {
		prefix = "/"
	}
	r.Route(prefix, func(r chi.Router) {
		wireAnnouncement(r, handler.Announcement, config, logger)
		wireBooking(r, handler.Booking, config, logger)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

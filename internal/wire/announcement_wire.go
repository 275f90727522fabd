package wire

import (
	"booking-service/internal/adaptor"
	"booking-service/pkg/middleware"
	"booking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAnnouncement(
	r chi.Router,
	announcementHandler *adaptor.AnnouncementHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Post("/announcement/{movie_id}", announcementHandler.Create)
		r.Get("/announcement/{announce_id}", announcementHandler.GetOne)
		r.Put("/announcement/{announce_id}", announcementHandler.Update)
		r.Delete("/announcement/{announce_id}", announcementHandler.Delete)
		r.Get("/announcements", announcementHandler.List)

		// Used by the rating service before a guest reviews the author
		r.Get("/announcement/{announce_id}/review/{guest_id}", announcementHandler.GetToReview)
	})
}

package wire

import (
	"booking-service/internal/adaptor"
	"booking-service/pkg/middleware"
	"booking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Post("/booking/{announcement_id}", bookingHandler.Create)
		r.Get("/booking/{booking_id}", bookingHandler.GetOne)
		r.Put("/booking/{booking_id}", bookingHandler.Update)
		r.Delete("/booking/{booking_id}", bookingHandler.Delete)
		r.Get("/bookings", bookingHandler.List)
	})

	// Service listing across all users
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Privileged(log))

		r.Get("/_bookings", bookingHandler.SudoList)
	})
}

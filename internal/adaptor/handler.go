package adaptor

import (
	"booking-service/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Announcement *AnnouncementHandler
	Booking      *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Announcement: NewAnnouncementHandler(service.Announcement, log),
		Booking:      NewBookingHandler(service.Booking, log),
	}
}

package repository

import (
	"booking-service/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Announcement AnnouncementRepository
	Booking      BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Announcement: NewAnnouncementRepository(db, log),
		Booking:      NewBookingRepository(db, log),
	}
}

package usecase

import (
	"booking-service/internal/data/repository"
	"booking-service/internal/notify"
	"booking-service/internal/peer"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Announcement AnnouncementService
	Booking      BookingService
}

// Notifiers carries one dispatcher per service so each stamps its own source name.
type Notifiers struct {
	Announcement notify.Notifier
	Booking      notify.Notifier
}

func NewService(repo *repository.Repository, peers peer.Clients, notifiers Notifiers, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Announcement: NewAnnouncementService(repo, peers, notifiers.Announcement, config.App.Debug, log),
		Booking:      NewBookingService(repo, peers, notifiers.Booking, config.App.Debug, log),
	}
}

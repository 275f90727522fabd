package usecase

import "booking-service/internal/data/entity"

// Remaining is the number of tickets still free. Never negative.
func Remaining(tickets, confirmed int) int {
	return max(tickets-confirmed, 0)
}

// NextStatus applies the capacity-driven Alive/Closed transition; other states are left alone.
func NextStatus(current entity.AnnouncementStatus, remaining int) entity.AnnouncementStatus {
	switch {
	case current == entity.AnnouncementClosed && remaining > 0:
		return entity.AnnouncementAlive
	case current == entity.AnnouncementAlive && remaining == 0:
		return entity.AnnouncementClosed
	}
	return current
}

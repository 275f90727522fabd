package usecase

import (
	"fmt"
	"slices"

	"booking-service/internal/data/entity"
)

// announcementRole: author first, then superuser.
func announcementRole(actor entity.Actor, a *entity.Announcement) entity.Role {
	switch {
	case actor.ID == a.AuthorID:
		return entity.RoleOwner
	case actor.IsPrivileged:
		return entity.RolePrivileged
	}
	return entity.RoleNone
}

// bookingRole: a party to the booking is never treated as privileged.
func bookingRole(actor entity.Actor, b *entity.Booking) entity.Role {
	switch {
	case actor.ID == b.AuthorID:
		return entity.RoleOwner
	case actor.ID == b.GuestID:
		return entity.RoleCounterparty
	case actor.IsPrivileged:
		return entity.RolePrivileged
	}
	return entity.RoleNone
}

func requireRole(role entity.Role, allowed ...entity.Role) error {
	if role == entity.RoleNone || !slices.Contains(allowed, role) {
		return fmt.Errorf("role %s: %w", role, entity.ErrNoAccess)
	}
	return nil
}

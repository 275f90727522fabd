package usecase

import (
	"testing"

	"booking-service/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAnnouncementRole(t *testing.T) {
	author := uuid.New()
	a := &entity.Announcement{AuthorID: author}

	assert.Equal(t, entity.RoleOwner, announcementRole(entity.Actor{ID: author, IsPrivileged: true}, a))
	assert.Equal(t, entity.RolePrivileged, announcementRole(entity.Actor{ID: uuid.New(), IsPrivileged: true}, a))
	assert.Equal(t, entity.RoleNone, announcementRole(entity.Actor{ID: uuid.New()}, a))
}

func TestBookingRole(t *testing.T) {
	author, guest := uuid.New(), uuid.New()
	b := &entity.Booking{AuthorID: author, GuestID: guest}

	tests := []struct {
		name  string
		actor entity.Actor
		want  entity.Role
	}{
		{"author", entity.Actor{ID: author}, entity.RoleOwner},
		{"guest", entity.Actor{ID: guest}, entity.RoleCounterparty},
		{"privileged guest stays a party", entity.Actor{ID: guest, IsPrivileged: true}, entity.RoleCounterparty},
		{"superuser", entity.Actor{ID: uuid.New(), IsPrivileged: true}, entity.RolePrivileged},
		{"outsider", entity.Actor{ID: uuid.New(), Permissions: []int{entity.PermissionUser}}, entity.RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bookingRole(tt.actor, b))
		})
	}
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, requireRole(entity.RoleOwner, entity.RoleOwner, entity.RolePrivileged))
	assert.ErrorIs(t, requireRole(entity.RoleCounterparty, entity.RoleOwner), entity.ErrNoAccess)
	assert.ErrorIs(t, requireRole(entity.RoleNone, entity.RoleNone), entity.ErrNoAccess)
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 2, Remaining(3, 1))
	assert.Equal(t, 0, Remaining(3, 3))
	assert.Equal(t, 0, Remaining(2, 5))
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current   entity.AnnouncementStatus
		remaining int
		want      entity.AnnouncementStatus
	}{
		{entity.AnnouncementAlive, 0, entity.AnnouncementClosed},
		{entity.AnnouncementAlive, 1, entity.AnnouncementAlive},
		{entity.AnnouncementClosed, 1, entity.AnnouncementAlive},
		{entity.AnnouncementClosed, 0, entity.AnnouncementClosed},
		{entity.AnnouncementCreated, 0, entity.AnnouncementCreated},
		{entity.AnnouncementDone, 3, entity.AnnouncementDone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStatus(tt.current, tt.remaining), "%s with %d left", tt.current, tt.remaining)
	}
}

package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Permission ids issued by the auth service.
const (
	PermissionUser          = 0
	PermissionSubscriber    = 1
	PermissionVipSubscriber = 2
	PermissionModerator     = 3
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID           uuid.UUID
	Permissions  []int
	IsPrivileged bool
}

func (a Actor) Has(permission int) bool {
	return slices.Contains(a.Permissions, permission)
}

// Role is the relationship of an actor to an announcement or booking.
type Role int

const (
	RoleNone Role = iota
	RolePrivileged
	RoleOwner
	RoleCounterparty
)

func (r Role) String() string {
	switch r {
	case RolePrivileged:
		return "privileged"
	case RoleOwner:
		return "owner"
	case RoleCounterparty:
		return "counterparty"
	}
	return "none"
}

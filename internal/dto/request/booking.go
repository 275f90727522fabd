package request

import (
	"time"

	"github.com/google/uuid"
)

type UpdateBookingRequest struct {
	MyStatus *bool `json:"my_status" validate:"required"`
}

// BookingQuery lists the caller's own bookings from one side.
type BookingQuery struct {
	Role  string
	Movie *uuid.UUID
	Date  *time.Time
}

// SudoBookingQuery lists any bookings; privileged callers only.
type SudoBookingQuery struct {
	Author *uuid.UUID
	Movie  *uuid.UUID
	Date   *time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthorStatus is the author's answer to a booking request.
type AuthorStatus string

const (
	AuthorPending   AuthorStatus = "pending"
	AuthorConfirmed AuthorStatus = "confirmed"
	AuthorDeclined  AuthorStatus = "declined"
)

// AuthorStatusFromBool maps the nullable column value to the enum.
func AuthorStatusFromBool(v *bool) AuthorStatus {
	switch {
	case v == nil:
		return AuthorPending
	case *v:
		return AuthorConfirmed
	default:
		return AuthorDeclined
	}
}

// AuthorStatusOf maps an explicit yes/no answer to the enum.
func AuthorStatusOf(v bool) AuthorStatus {
	if v {
		return AuthorConfirmed
	}
	return AuthorDeclined
}

// Nullable returns the column value: nil while pending.
func (s AuthorStatus) Nullable() *bool {
	switch s {
	case AuthorConfirmed:
		v := true
		return &v
	case AuthorDeclined:
		v := false
		return &v
	}
	return nil
}

type Booking struct {
	Base
	AnnouncementID uuid.UUID    `db:"announcement_id"`
	MovieID        uuid.UUID    `db:"movie_id"`
	AuthorID       uuid.UUID    `db:"author_id"`
	GuestID        uuid.UUID    `db:"guest_id"`
	AuthorStatus   AuthorStatus `db:"author_status"`
	GuestStatus    bool         `db:"guest_status"`
	EventTime      time.Time    `db:"event_time"`
}

// Confirmed reports whether both parties agreed; only such bookings use a ticket.
func (b *Booking) Confirmed() bool {
	return b.AuthorStatus == AuthorConfirmed && b.GuestStatus
}

// BookingSide names which party of a booking a listing is done for.
type BookingSide string

const (
	SideGuest  BookingSide = "guest"
	SideAuthor BookingSide = "author"
)

func (s BookingSide) Valid() bool {
	return s == SideGuest || s == SideAuthor
}

type BookingFilter struct {
	AuthorID  *uuid.UUID
	GuestID   *uuid.UUID
	MovieID   *uuid.UUID
	EventTime *time.Time
}

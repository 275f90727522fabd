package notify

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventAnnounceNew    EventType = "announce_new"
	EventAnnouncePut    EventType = "announce_put"
	EventAnnounceDelete EventType = "announce_delete"
	EventBookingNew     EventType = "booking_new"
	EventBookingStatus  EventType = "booking_status"
	EventBookingDelete  EventType = "booking_delete"
)

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp marshals as "YYYY-MM-DD HH:MM:SS", the format the notification service parses.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(timestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	parsed, err := time.Parse(`"`+timestampLayout+`"`, string(b))
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Event is the envelope delivered to the notification service.
type Event struct {
	NotificationID uuid.UUID `json:"notification_id"`
	SourceName     string    `json:"source_name"`
	EventType      EventType `json:"event_type"`
	Context        any       `json:"context"`
	CreatedAt      Timestamp `json:"created_at"`
}

type NewAnnounce struct {
	NewAnnounceID uuid.UUID `json:"new_announce_id"`
	UserID        uuid.UUID `json:"user_id"`
}

type PutAnnounce struct {
	PutAnnounceID uuid.UUID `json:"put_announce_id"`
	UserID        uuid.UUID `json:"user_id"`
}

type DeleteAnnounce struct {
	DeleteAnnounceID uuid.UUID `json:"delete_announce_id"`
	AuthorName       string    `json:"author_name"`
	AnnounceTitle    string    `json:"announce_title"`
	UserID           uuid.UUID `json:"user_id"`
}

type NewBooking struct {
	NewBookingID uuid.UUID `json:"new_booking_id"`
	AnnounceID   uuid.UUID `json:"announce_id"`
	UserID       uuid.UUID `json:"user_id"`
}

type StatusBooking struct {
	StatusBookingID uuid.UUID `json:"status_booking_id"`
	AnnounceID      uuid.UUID `json:"announce_id"`
	UserID          uuid.UUID `json:"user_id"`
	AnotherID       uuid.UUID `json:"another_id"`
}

type DeleteBooking struct {
	DelBookingAnnounceID uuid.UUID `json:"del_booking_announce_id"`
	GuestName            string    `json:"guest_name"`
	UserID               uuid.UUID `json:"user_id"`
}

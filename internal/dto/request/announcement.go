package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateAnnouncementRequest struct {
	Status        string    `json:"status" validate:"required,oneof=Created Alive"`
	Title         string    `json:"title" validate:"required,max=255"`
	Description   string    `json:"description" validate:"max=4000"`
	SubOnly       bool      `json:"sub_only"`
	IsFree        bool      `json:"is_free"`
	TicketsCount  int       `json:"tickets_count" validate:"min=1"`
	EventTime     time.Time `json:"event_time" validate:"required"`
	EventLocation string    `json:"event_location" validate:"required,max=255"`
}

// UpdateAnnouncementRequest is a partial update; omitted fields stay unchanged.
type UpdateAnnouncementRequest struct {
	Status        *string    `json:"status" validate:"omitempty,oneof=Created Alive Closed Done"`
	Title         *string    `json:"title" validate:"omitempty,max=255"`
	Description   *string    `json:"description" validate:"omitempty,max=4000"`
	SubOnly       *bool      `json:"sub_only"`
	IsFree        *bool      `json:"is_free"`
	TicketsCount  *int       `json:"tickets_count" validate:"omitempty,min=1"`
	EventTime     *time.Time `json:"event_time"`
	EventLocation *string    `json:"event_location" validate:"omitempty,max=255"`
}

// AnnouncementQuery holds the optional listing filters.
type AnnouncementQuery struct {
	Author   *uuid.UUID
	Movie    *uuid.UUID
	Free     *bool
	Sub      bool
	Ticket   *int
	Date     *time.Time
	Location *string
}

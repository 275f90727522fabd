package entity

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementStatus string

const (
	AnnouncementCreated AnnouncementStatus = "Created"
	AnnouncementAlive   AnnouncementStatus = "Alive"
	AnnouncementClosed  AnnouncementStatus = "Closed"
	AnnouncementDone    AnnouncementStatus = "Done"
)

func (s AnnouncementStatus) Valid() bool {
	switch s {
	case AnnouncementCreated, AnnouncementAlive, AnnouncementClosed, AnnouncementDone:
		return true
	}
	return false
}

type Announcement struct {
	Base
	Status        AnnouncementStatus `db:"status"`
	Title         string             `db:"title"`
	Description   string             `db:"description"`
	MovieID       uuid.UUID          `db:"movie_id"`
	AuthorID      uuid.UUID          `db:"author_id"`
	SubOnly       bool               `db:"sub_only"`
	IsFree        bool               `db:"is_free"`
	TicketsCount  int                `db:"tickets_count"`
	EventTime     time.Time          `db:"event_time"`
	EventLocation string             `db:"event_location"`
	Duration      int                `db:"duration"`
}

// AnnouncementPatch carries a partial update; nil fields are left untouched.
type AnnouncementPatch struct {
	Status        *AnnouncementStatus
	Title         *string
	Description   *string
	SubOnly       *bool
	IsFree        *bool
	TicketsCount  *int
	EventTime     *time.Time
	EventLocation *string
}

func (p AnnouncementPatch) Empty() bool {
	return p.Status == nil && p.Title == nil && p.Description == nil &&
		p.SubOnly == nil && p.IsFree == nil && p.TicketsCount == nil &&
		p.EventTime == nil && p.EventLocation == nil
}

type AnnouncementFilter struct {
	AuthorID        *uuid.UUID
	MovieID         *uuid.UUID
	IsFree          *bool
	TicketsCount    *int
	EventTime       *time.Time
	EventLocation   *string
	Status          *AnnouncementStatus
	RestrictAuthors bool
	AuthorsIn       []uuid.UUID // only honoured when RestrictAuthors is set
}

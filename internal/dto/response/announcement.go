package response

import (
	"time"

	"booking-service/internal/data/entity"
)

type GuestResponse struct {
	BookingID    string  `json:"booking_id"`
	GuestID      string  `json:"guest_id"`
	GuestName    string  `json:"guest_name"`
	GuestRating  float64 `json:"guest_rating"`
	GuestStatus  bool    `json:"guest_status"`
	AuthorStatus *bool   `json:"author_status"`
}

type AnnouncementDetailResponse struct {
	ID            string                    `json:"id"`
	Created       time.Time                 `json:"created"`
	Modified      time.Time                 `json:"modified"`
	Status        entity.AnnouncementStatus `json:"status"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	MovieID       string                    `json:"movie_id"`
	MovieTitle    string                    `json:"movie_title"`
	AuthorID      string                    `json:"author_id"`
	AuthorName    string                    `json:"author_name"`
	AuthorRating  float64                   `json:"author_rating"`
	SubOnly       bool                      `json:"sub_only"`
	IsFree        bool                      `json:"is_free"`
	TicketsCount  int                       `json:"tickets_count"`
	TicketsLeft   int                       `json:"tickets_left"`
	EventTime     time.Time                 `json:"event_time"`
	EventLocation string                    `json:"event_location"`
	Duration      int                       `json:"duration"`
	GuestList     []GuestResponse           `json:"guest_list"`
}

type AnnouncementResponse struct {
	ID            string                    `json:"id"`
	Status        entity.AnnouncementStatus `json:"status"`
	Title         string                    `json:"title"`
	MovieID       string                    `json:"movie_id"`
	AuthorID      string                    `json:"author_id"`
	SubOnly       bool                      `json:"sub_only"`
	IsFree        bool                      `json:"is_free"`
	TicketsCount  int                       `json:"tickets_count"`
	EventTime     time.Time                 `json:"event_time"`
	EventLocation string                    `json:"event_location"`
	Duration      int                       `json:"duration"`
}

// AnnouncementReviewResponse is what the rating service needs to let a guest review an author.
type AnnouncementReviewResponse struct {
	AuthorID          string `json:"author_id"`
	GuestID           string `json:"guest_id"`
	AnnouncementID    string `json:"announcement_id"`
	AuthorName        string `json:"author_name"`
	GuestName         string `json:"guest_name"`
	AnnouncementTitle string `json:"announcement_title"`
}

// Helper converters
func AnnouncementToResponse(a *entity.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:            a.ID.String(),
		Status:        a.Status,
		Title:         a.Title,
		MovieID:       a.MovieID.String(),
		AuthorID:      a.AuthorID.String(),
		SubOnly:       a.SubOnly,
		IsFree:        a.IsFree,
		TicketsCount:  a.TicketsCount,
		EventTime:     a.EventTime,
		EventLocation: a.EventLocation,
		Duration:      a.Duration,
	}
}

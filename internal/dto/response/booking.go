package response

import "time"

type BookingResponse struct {
	ID           string `json:"id"`
	AuthorName   string `json:"author_name"`
	GuestName    string `json:"guest_name"`
	AuthorStatus *bool  `json:"author_status"`
	GuestStatus  bool   `json:"guest_status"`
}

type BookingDetailResponse struct {
	ID             string    `json:"id"`
	AnnouncementID string    `json:"announcement_id"`
	MovieTitle     string    `json:"movie_title"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorRating   float64   `json:"author_rating"`
	GuestID        string    `json:"guest_id"`
	GuestName      string    `json:"guest_name"`
	GuestRating    float64   `json:"guest_rating"`
	AuthorStatus   *bool     `json:"author_status"`
	GuestStatus    bool      `json:"guest_status"`
	EventTime      time.Time `json:"event_time"`
}

package entity

import "github.com/google/uuid"

// Movie is the slice of catalogue data this service needs.
type Movie struct {
	ID       uuid.UUID `json:"movie_id"`
	Title    string    `json:"movie_title"`
	Duration int       `json:"duration"`
}

type UserProfile struct {
	ID          uuid.UUID   `json:"user_id"`
	Name        string      `json:"user_name"`
	Subscribers []uuid.UUID `json:"subs"`
}

type Rating struct {
	Score float64 `json:"user_rating"`
}

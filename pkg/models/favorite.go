package models

import "time"

type Favorite struct {
	UserID    string    `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteItem is a favorite joined with its movie row for listings.
type FavoriteItem struct {
	MovieID int64     `json:"movie_id"`
	Title   string    `json:"title"`
	Year    int       `json:"year,omitempty"`
	Rating  float64   `json:"rating,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

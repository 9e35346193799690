package events

import "time"

// FavoriteEvent is pushed to connected clients when a user saves or
// removes a favorite.
type FavoriteEvent struct {
	Type    string    `json:"type"` // favorite.add | favorite.remove
	UserID  string    `json:"user_id"`
	MovieID int64     `json:"movie_id"`
	At      time.Time `json:"at"`
}

package domain

import "time"

// Category groups blogs of a single user.
type Category struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

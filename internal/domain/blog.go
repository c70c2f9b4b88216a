package domain

import "time"

// Blog is a post filed under a (User, Category) pair.
type Blog struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user"`
	CategoryID  string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

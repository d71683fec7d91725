package model

import "time"

// Notification is an in-app message for a user, created asynchronously from
// order events.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Banner is a promotional image shown on the storefront. Admin-managed.
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageKey  string    `json:"image_key"`
	LinkURL   string    `json:"link_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package project

import "time"

// Project is an independently persisted, independently email-scoped roster.
// Position preserves insertion order for listing.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

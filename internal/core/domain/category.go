package domain

import "time"

// Category is a post label. Names are unique; categories are never updated
// or deleted once created.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

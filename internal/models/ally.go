package models

import "time"

// Ally is a relationship the user intends to keep in contact with.
type Ally struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	FrequencyDays int       `json:"frequency_days"` // expected contact cadence
	LastContact   time.Time `json:"last_contact"`
	ContactMethod string    `json:"contact_method,omitempty"` // tel:, mailto: or http(s) link
	CreatedAt     time.Time `json:"created_at"`
}

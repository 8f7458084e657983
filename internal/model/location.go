package model

import "time"

// Location is a user-defined storage place (fridge, pantry, ...).
type Location struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

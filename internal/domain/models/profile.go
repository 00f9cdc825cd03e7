package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a stored user profile with its birth data. The natal chart for a
// profile is recomputed and persisted whenever birth data changes.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	BirthDate        string    `json:"birth_date"` // YYYY-MM-DD
	BirthTime        string    `json:"birth_time"` // HH:MM, 24h
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	UTCOffsetMinutes int       `json:"utc_offset_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

package model

import "time"

// Slot is a sellable (content type, duration) unit on a screen.
type Slot struct {
	ID              int       `db:"id"               json:"id"`
	ScreenID        int       `db:"screen_id"        json:"screen_id"`
	ContentType     string    `db:"content_type"     json:"content_type"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	PricePerPlay    float64   `db:"price_per_play"   json:"price_per_play"`
	IsActive        bool      `db:"is_active"        json:"is_active"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

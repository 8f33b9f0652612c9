package model

import "time"

// Period is a named recurring daily window on a screen. EndHour <= StartHour
// means the window wraps past midnight. All wrap-aware hour arithmetic lives
// here so duration, "is current" and availability never diverge.
type Period struct {
	ID              int       `db:"id"               json:"id"`
	ScreenID        int       `db:"screen_id"        json:"screen_id"`
	Name            string    `db:"name"             json:"name"`
	StartHour       int       `db:"start_hour"       json:"start_hour"`
	EndHour         int       `db:"end_hour"         json:"end_hour"`
	PriceMultiplier float64   `db:"price_multiplier" json:"price_multiplier"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

// Wraps reports whether the window crosses midnight.
func (p Period) Wraps() bool {
	return p.EndHour <= p.StartHour
}

// DurationHours returns the wrap-aware span of the window in hours.
func (p Period) DurationHours() int {
	if p.Wraps() {
		return 24 - p.StartHour + p.EndHour
	}
	return p.EndHour - p.StartHour
}

// DurationSeconds returns the wrap-aware span of the window in seconds.
func (p Period) DurationSeconds() int {
	return p.DurationHours() * 3600
}

// ContainsHour reports whether the given hour of day falls inside the window.
func (p Period) ContainsHour(hour int) bool {
	if p.Wraps() {
		return hour >= p.StartHour || hour < p.EndHour
	}
	return hour >= p.StartHour && hour < p.EndHour
}

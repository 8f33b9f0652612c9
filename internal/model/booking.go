package model

import "time"

// Booking status state machine: pending -> active -> completed, or -> rejected.
const (
	BookingStatusPending   = "pending"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusRejected  = "rejected"
)

// Content approval states set by the external approval workflow.
const (
	ContentStatusPending  = "pending"
	ContentStatusApproved = "approved"
	ContentStatusRejected = "rejected"
)

// Booking is a purchase of NumPlays plays of a slot over a date range.
// TimePeriodID == nil means the booking is unassigned and is prorated
// across all periods of the screen. EndDate == nil means ongoing.
type Booking struct {
	ID              int        `db:"id"                json:"id"`
	ScreenID        int        `db:"screen_id"         json:"screen_id"`
	SlotID          int        `db:"slot_id"           json:"slot_id"`
	TimePeriodID    *int       `db:"time_period_id"    json:"time_period_id"`
	ContentName     string     `db:"content_name"      json:"content_name"`
	ContentURL      string     `db:"content_url"       json:"content_url"`
	ContentType     string     `db:"content_type"      json:"content_type"`
	ContentStatus   string     `db:"content_status"    json:"content_status"`
	DurationSeconds int        `db:"duration_seconds"  json:"duration_seconds"`
	NumPlays        int        `db:"num_plays"         json:"num_plays"`
	PlaysCompleted  int        `db:"plays_completed"   json:"plays_completed"`
	StartDate       *time.Time `db:"start_date"        json:"start_date"`
	EndDate         *time.Time `db:"end_date"          json:"end_date"`
	Status          string     `db:"status"            json:"status"`
	CreatedAt       time.Time  `db:"created_at"        json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"        json:"updated_at"`
}

// RemainingPlays returns how many purchased plays have not run yet.
func (b Booking) RemainingPlays() int {
	if r := b.NumPlays - b.PlaysCompleted; r > 0 {
		return r
	}
	return 0
}

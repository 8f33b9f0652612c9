package model

import "time"

// InternalContent is low-priority screen-owned content with an optional
// active date window.
type InternalContent struct {
	ID              int        `db:"id"               json:"id"`
	ScreenID        int        `db:"screen_id"        json:"screen_id"`
	Name            string     `db:"name"             json:"name"`
	URL             string     `db:"url"              json:"url"`
	Type            string     `db:"type"             json:"type"`
	DurationSeconds int        `db:"duration_seconds" json:"duration_seconds"`
	Priority        int        `db:"priority"         json:"priority"`
	IsActive        bool       `db:"is_active"        json:"is_active"`
	StartDate       *time.Time `db:"start_date"       json:"start_date,omitempty"`
	EndDate         *time.Time `db:"end_date"         json:"end_date,omitempty"`
	CreatedAt       time.Time  `db:"created_at"       json:"created_at"`
}

// ActiveOn reports whether the item should run on the given day, honoring
// the optional start/end window.
func (c InternalContent) ActiveOn(day time.Time) bool {
	return windowActiveOn(day, c.IsActive, c.StartDate, c.EndDate)
}

func windowActiveOn(day time.Time, active bool, start, end *time.Time) bool {
	if !active {
		return false
	}
	d := dateOnly(day)
	if start != nil && d.Before(dateOnly(*start)) {
		return false
	}
	if end != nil && d.After(dateOnly(*end)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Filler is the lowest-priority content on a screen. It has no scheduling
// window, only an active flag.
type Filler struct {
	ID              int       `db:"id"               json:"id"`
	ScreenID        int       `db:"screen_id"        json:"screen_id"`
	Name            string    `db:"name"             json:"name"`
	URL             string    `db:"url"              json:"url"`
	Type            string    `db:"type"             json:"type"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	IsActive        bool      `db:"is_active"        json:"is_active"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

// AdSalesContent is house ad-sales promotional content shown between paid
// and filler priority tiers.
type AdSalesContent struct {
	ID              int        `db:"id"               json:"id"`
	ScreenID        int        `db:"screen_id"        json:"screen_id"`
	Name            string     `db:"name"             json:"name"`
	URL             string     `db:"url"              json:"url"`
	Type            string     `db:"type"             json:"type"`
	DurationSeconds int        `db:"duration_seconds" json:"duration_seconds"`
	IsActive        bool       `db:"is_active"        json:"is_active"`
	StartDate       *time.Time `db:"start_date"       json:"start_date,omitempty"`
	EndDate         *time.Time `db:"end_date"         json:"end_date,omitempty"`
	CreatedAt       time.Time  `db:"created_at"       json:"created_at"`
}

// ActiveOn reports whether the ad-sales item should run on the given day.
func (a AdSalesContent) ActiveOn(day time.Time) bool {
	return windowActiveOn(day, a.IsActive, a.StartDate, a.EndDate)
}

package model

import "time"

// Overlay sources.
const (
	OverlaySourceManual    = "manual"
	OverlaySourceBroadcast = "broadcast"
)

// Screen positions an overlay can attach to.
const (
	OverlayPositionHeader = "header"
	OverlayPositionBody   = "body"
	OverlayPositionFooter = "footer"
	OverlayPositionCorner = "corner"
)

// Overlay frequency-cap modes.
const (
	FrequencyAlways   = "always"
	FrequencyDuration = "duration"
	FrequencyPassage  = "passage"
)

// Passage-counter reset granularities.
const (
	PassageResetDay     = "day"
	PassageResetWeek    = "week"
	PassageResetDaypart = "daypart"
)

// BroadcastInjectedPriority is the fixed priority of overlays created from a
// firing broadcast.
const BroadcastInjectedPriority = 200

// ScreenOverlay is a live overlay instance (ticker/image/corner) attached to
// one screen and one position. A paused overlay always records the broadcast
// that paused it and is resumable only by that broadcast going away.
type ScreenOverlay struct {
	ID       int    `db:"id"        json:"id"`
	ScreenID int    `db:"screen_id" json:"screen_id"`
	Source   string `db:"source"    json:"source"`

	BroadcastID *int `db:"broadcast_id" json:"broadcast_id,omitempty"`

	Type            string  `db:"type"             json:"type"`
	Message         *string `db:"message"          json:"message,omitempty"`
	ImageURL        *string `db:"image_url"        json:"image_url,omitempty"`
	Position        string  `db:"position"         json:"position"`
	BackgroundColor *string `db:"background_color" json:"background_color,omitempty"`
	TextColor       *string `db:"text_color"       json:"text_color,omitempty"`
	FontSize        *int    `db:"font_size"        json:"font_size,omitempty"`
	ScrollSpeed     *int    `db:"scroll_speed"     json:"scroll_speed,omitempty"`

	Priority int  `db:"priority"  json:"priority"`
	IsActive bool `db:"is_active" json:"is_active"`

	IsPaused            bool       `db:"is_paused"              json:"is_paused"`
	PausedByBroadcastID *int       `db:"paused_by_broadcast_id" json:"paused_by_broadcast_id,omitempty"`
	PausedAt            *time.Time `db:"paused_at"              json:"paused_at,omitempty"`

	FrequencyType       string     `db:"frequency_type"        json:"frequency_type"`
	DisplayDuration     *int       `db:"display_duration"      json:"display_duration,omitempty"`
	PassageLimit        *int       `db:"passage_limit"         json:"passage_limit,omitempty"`
	PassageReset        string     `db:"passage_reset"         json:"passage_reset"`
	CurrentPassageCount int        `db:"current_passage_count" json:"current_passage_count"`
	LastPassageReset    *time.Time `db:"last_passage_reset"    json:"last_passage_reset,omitempty"`

	StartTime *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime   *time.Time `db:"end_time"   json:"end_time,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

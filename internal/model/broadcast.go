package model

import (
	"time"

	"github.com/lib/pq"
)

// Broadcast kinds.
const (
	BroadcastTypeOverlay = "overlay"
	BroadcastTypeContent = "content"
)

// Broadcast scheduling modes.
const (
	ScheduleModeImmediate = "immediate"
	ScheduleModeScheduled = "scheduled"
)

// Recurrence rules.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceCustom  = "custom"
)

// Organization-type filters for broadcast targeting.
const (
	OrgFilterAll  = "all"
	OrgFilterPaid = "paid"
	OrgFilterFree = "free"
)

// Broadcast is a centrally issued overlay or content injection targeting
// screens by screen/organization/city/country. Scheduling is either
// immediate (active while the absolute window holds) or scheduled with an
// optional recurrence rule.
type Broadcast struct {
	ID              int     `db:"id"               json:"id"`
	Name            string  `db:"name"             json:"name"`
	Type            string  `db:"type"             json:"type"`
	ContentURL      *string `db:"content_url"      json:"content_url,omitempty"`
	ContentType     *string `db:"content_type"     json:"content_type,omitempty"`
	DurationSeconds int     `db:"duration_seconds" json:"duration_seconds"`

	// Overlay payload, used when Type == overlay.
	Message         *string `db:"message"          json:"message,omitempty"`
	ImageURL        *string `db:"image_url"        json:"image_url,omitempty"`
	OverlayKind     *string `db:"overlay_kind"     json:"overlay_kind,omitempty"`
	OverlayPosition *string `db:"overlay_position" json:"overlay_position,omitempty"`

	// Targeting.
	TargetScreenID       *int    `db:"target_screen_id"       json:"target_screen_id,omitempty"`
	TargetOrganizationID *int    `db:"target_organization_id" json:"target_organization_id,omitempty"`
	TargetCity           *string `db:"target_city"            json:"target_city,omitempty"`
	TargetCountry        *string `db:"target_country"         json:"target_country,omitempty"`
	OrgFilter            string  `db:"org_filter"             json:"org_filter"`

	// Scheduling.
	ScheduleMode       string         `db:"schedule_mode"       json:"schedule_mode"`
	IsActive           bool           `db:"is_active"           json:"is_active"`
	StartDatetime      *time.Time     `db:"start_datetime"      json:"start_datetime,omitempty"`
	EndDatetime        *time.Time     `db:"end_datetime"        json:"end_datetime,omitempty"`
	ScheduledDatetime  *time.Time     `db:"scheduled_datetime"  json:"scheduled_datetime,omitempty"`
	RecurrenceType     string         `db:"recurrence_type"     json:"recurrence_type"`
	RecurrenceInterval int            `db:"recurrence_interval" json:"recurrence_interval"`
	RecurrenceDays     pq.Int64Array  `db:"recurrence_days"     json:"recurrence_days,omitempty"`
	RecurrenceEndDate  *time.Time     `db:"recurrence_end_date" json:"recurrence_end_date,omitempty"`
	RecurrenceTime     *string        `db:"recurrence_time"     json:"recurrence_time,omitempty"`

	SchedulePriority int  `db:"schedule_priority" json:"schedule_priority"`
	ContentPriority  int  `db:"content_priority"  json:"content_priority"`
	OverridePlaylist bool `db:"override_playlist" json:"override_playlist"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Priority returns the effective playlist priority of a content broadcast:
// the schedule priority for scheduled broadcasts, the content priority
// otherwise.
func (b Broadcast) Priority() int {
	if b.ScheduleMode == ScheduleModeScheduled {
		return b.SchedulePriority
	}
	return b.ContentPriority
}

package packets

// @ ORGANIZATIONS

type CreateOrganizationRequest struct {
	Name    string  `json:"name" binding:"required"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	IsPaid  bool    `json:"is_paid"`
}

// @ SCREENS

type CreateScreenRequest struct {
	OrganizationID        int      `json:"organization_id" binding:"required"`
	Name                  string   `json:"name" binding:"required"`
	Location              *string  `json:"location"`
	ResolutionWidth       *int     `json:"resolution_width"`
	ResolutionHeight      *int     `json:"resolution_height"`
	SecurityBufferMinutes int      `json:"security_buffer_minutes"`
	Mode                  string   `json:"mode"`
	SupportedContentTypes []string `json:"supported_content_types"`
}

type UpdateScreenRequest struct {
	Name                  *string `json:"name"`
	Location              *string `json:"location"`
	ResolutionWidth       *int    `json:"resolution_width"`
	ResolutionHeight      *int    `json:"resolution_height"`
	SecurityBufferMinutes *int    `json:"security_buffer_minutes"`
	Mode                  *string `json:"mode"`
	StreamURL             *string `json:"stream_url"`
	IsActive              *bool   `json:"is_active"`
}

type PairScreenRequest struct {
	PairingCode string `json:"code" binding:"required"`
	ScreenID    int    `json:"screen_id" binding:"required"`
}

// @ PERIODS

type CreatePeriodRequest struct {
	Name            string  `json:"name" binding:"required"`
	StartHour       int     `json:"start_hour" binding:"min=0,max=23"`
	EndHour         int     `json:"end_hour" binding:"min=0,max=23"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

type UpdatePeriodRequest struct {
	Name            *string  `json:"name"`
	StartHour       *int     `json:"start_hour"`
	EndHour         *int     `json:"end_hour"`
	PriceMultiplier *float64 `json:"price_multiplier"`
}

// @ SLOTS

type CreateSlotRequest struct {
	ContentType     string  `json:"content_type" binding:"required"`
	DurationSeconds int     `json:"duration_seconds" binding:"required,min=1"`
	PricePerPlay    float64 `json:"price_per_play"`
}

// @ BOOKINGS

// CreateBookingRequest reserves NumPlays plays of a slot. Dates are
// "2006-01-02"; both empty means a single-day booking for today.
type CreateBookingRequest struct {
	SlotID       int     `json:"slot_id" binding:"required"`
	TimePeriodID *int    `json:"time_period_id"`
	ContentName  string  `json:"content_name" binding:"required"`
	ContentURL   string  `json:"content_url" binding:"required,url"`
	ContentType  string  `json:"content_type" binding:"required"`
	NumPlays     int     `json:"num_plays" binding:"required,min=1"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// @ BROADCASTS

type CreateBroadcastRequest struct {
	Name            string  `json:"name" binding:"required"`
	Type            string  `json:"type" binding:"required,oneof=overlay content"`
	ContentURL      *string `json:"content_url"`
	ContentType     *string `json:"content_type"`
	DurationSeconds int     `json:"duration_seconds"`

	Message         *string `json:"message"`
	ImageURL        *string `json:"image_url"`
	OverlayKind     *string `json:"overlay_kind"`
	OverlayPosition *string `json:"overlay_position"`

	TargetScreenID       *int    `json:"target_screen_id"`
	TargetOrganizationID *int    `json:"target_organization_id"`
	TargetCity           *string `json:"target_city"`
	TargetCountry        *string `json:"target_country"`
	OrgFilter            string  `json:"org_filter"`

	ScheduleMode       string   `json:"schedule_mode" binding:"required,oneof=immediate scheduled"`
	StartDatetime      *string  `json:"start_datetime"`
	EndDatetime        *string  `json:"end_datetime"`
	ScheduledDatetime  *string  `json:"scheduled_datetime"`
	RecurrenceType     string   `json:"recurrence_type"`
	RecurrenceInterval int      `json:"recurrence_interval"`
	RecurrenceDays     []int64  `json:"recurrence_days"`
	RecurrenceEndDate  *string  `json:"recurrence_end_date"`
	RecurrenceTime     *string  `json:"recurrence_time"`

	SchedulePriority int  `json:"schedule_priority"`
	ContentPriority  int  `json:"content_priority"`
	OverridePlaylist bool `json:"override_playlist"`
}

// @ CONTENT

type CreateInternalContentRequest struct {
	Name            string  `json:"name" binding:"required"`
	URL             string  `json:"url" binding:"required,url"`
	Type            string  `json:"type" binding:"required"`
	DurationSeconds int     `json:"duration_seconds" binding:"required,min=1"`
	Priority        int     `json:"priority"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
}

type CreateFillerRequest struct {
	Name            string `json:"name" binding:"required"`
	URL             string `json:"url" binding:"required,url"`
	Type            string `json:"type" binding:"required"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=1"`
}

type CreateAdSalesContentRequest struct {
	Name            string  `json:"name" binding:"required"`
	URL             string  `json:"url" binding:"required,url"`
	Type            string  `json:"type" binding:"required"`
	DurationSeconds int     `json:"duration_seconds" binding:"required,min=1"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
}

type SetContentActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// @ SETTINGS

type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

package packets

import (
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

// ScreenResponse mirrors model.Screen but flattens times to RFC3339.
type ScreenResponse struct {
	ID                    int      `json:"id"`
	OrganizationID        int      `json:"organization_id"`
	DeviceID              *string  `json:"device_id"`
	Name                  string   `json:"name"`
	Location              *string  `json:"location"`
	ResolutionWidth       *int     `json:"resolution_width"`
	ResolutionHeight      *int     `json:"resolution_height"`
	SupportedContentTypes []string `json:"supported_content_types"`
	SecurityBufferMinutes int      `json:"security_buffer_minutes"`
	Mode                  string   `json:"mode"`
	StreamURL             *string  `json:"stream_url,omitempty"`
	IsActive              bool     `json:"is_active"`
	Paired                bool     `json:"paired"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

// BookingQuoteResponse is returned on booking creation: the stored booking,
// its price, the plays-per-day plan the calculator committed to, and the
// remaining availability in the booked range. Overcommitted ranges show
// zero availability; the booking is still created.
type BookingQuoteResponse struct {
	Booking      model.Booking               `json:"booking"`
	TotalPrice   float64                     `json:"total_price"`
	Allocation   []schedule.DayAllocation    `json:"allocation"`
	Availability schedule.AvailabilityResult `json:"availability"`
}

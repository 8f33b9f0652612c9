package model

import (
	"time"

	"github.com/lib/pq"
)

// Screen operating modes.
const (
	ScreenModeStandard = "standard"
	ScreenModeIPTV     = "iptv"
)

// Screen represents a display device that sells advertising capacity.
type Screen struct {
	ID                    int            `db:"id"              json:"id"`
	OrganizationID        int            `db:"organization_id" json:"organization_id"`
	DeviceID              *string        `db:"device_id"       json:"device_id"`
	Name                  string         `db:"name"            json:"name"`
	Location              *string        `db:"location"        json:"location"`
	ResolutionWidth       *int           `db:"resolution_width"  json:"resolution_width"`
	ResolutionHeight      *int           `db:"resolution_height" json:"resolution_height"`
	SupportedContentTypes pq.StringArray `db:"supported_content_types" json:"supported_content_types"`
	SecurityBufferMinutes int            `db:"security_buffer_minutes" json:"security_buffer_minutes"`
	Mode                  string         `db:"mode"            json:"mode"`
	StreamURL             *string        `db:"stream_url"      json:"stream_url,omitempty"`
	IsActive              bool           `db:"is_active"       json:"is_active"`
	Paired                bool           `db:"paired"          json:"paired"`
	CreatedAt             time.Time      `db:"created_at"      json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"      json:"updated_at"`
}

// SupportsContentType reports whether the screen accepts the given content type.
// An empty list means the screen accepts everything.
func (s Screen) SupportsContentType(contentType string) bool {
	if len(s.SupportedContentTypes) == 0 {
		return true
	}
	for _, t := range s.SupportedContentTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

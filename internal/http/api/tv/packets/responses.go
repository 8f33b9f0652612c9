package packets

import (
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

// RESPONSES FOR /api/tv/playlist

// PlaylistResponse is the full playback state for one poll. On IPTV screens
// Items and Timeline are empty and Stream carries the feed URL.
type PlaylistResponse struct {
	ScreenID int                        `json:"screen_id"`
	Mode     string                     `json:"mode"`
	Stream   *schedule.StreamDescriptor `json:"stream,omitempty"`
	Items    []schedule.Item            `json:"items"`
	Timeline []schedule.TimelineEntry   `json:"timeline,omitempty"`
	Overlays []model.ScreenOverlay      `json:"overlays"`
}

type PlaybackReportResponse struct {
	BookingID      int    `json:"booking_id"`
	PlaysCompleted int    `json:"plays_completed"`
	NumPlays       int    `json:"num_plays"`
	Status         string `json:"status"`
}

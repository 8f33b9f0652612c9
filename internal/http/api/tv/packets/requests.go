package packets

// REQUESTS FOR /api/tv/pair
type RegisterPairingCodeRequest struct {
	PairingCode string `json:"code" binding:"required"`
	DeviceID    string `json:"device_id" binding:"required"`
}

type TVRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// REQUESTS FOR /api/tv/playback
type PlaybackReportRequest struct {
	DeviceID  string `json:"device_id" binding:"required"`
	BookingID int    `json:"booking_id" binding:"required"`
}

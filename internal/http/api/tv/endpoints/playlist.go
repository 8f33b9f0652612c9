package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
	"github.com/Nixie-Tech-LLC/argus/internal/settings"
)

// overrideHorizon is how far ahead of its trigger an upcoming override
// broadcast is included in the timeline, so devices can cut over exactly on
// time instead of waiting for the next poll.
const overrideHorizon = 5 * time.Minute

type PlaylistController struct {
	cache *settings.Cache
}

func RegisterPlaylistRoutes(r gin.IRoutes, cache *settings.Cache) {
	ctl := &PlaylistController{cache: cache}

	r.GET("/playlist", ctl.getPlaylist)
	r.POST("/playback", ctl.reportPlayback)
}

// getPlaylist resolves the full playback state for one device poll: expire
// finished broadcast overlays, rebuild the priority playlist, weave upcoming
// override broadcasts into a timeline and attach eligible overlays.
func (p *PlaylistController) getPlaylist(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	screen, err := db.GetScreenByDeviceID(&deviceID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized device"})
		return
	}
	if !screen.IsActive {
		c.JSON(http.StatusOK, packets.PlaylistResponse{ScreenID: screen.ID, Mode: screen.Mode})
		return
	}

	now := schedule.Now()

	overlays, err := db.ListOverlaysForScreen(screen.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load overlays"})
		return
	}
	overlays = p.reconcileOverlays(now, overlays)

	if screen.Mode == model.ScreenModeIPTV {
		_, stream := schedule.Build(schedule.BuildInput{Screen: screen}, now)
		c.JSON(http.StatusOK, packets.PlaylistResponse{
			ScreenID: screen.ID,
			Mode:     screen.Mode,
			Stream:   stream,
			Overlays: p.eligibleOverlays(now, overlays),
		})
		return
	}

	input, overrides, err := p.loadScreenState(screen, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load screen state"})
		return
	}

	items, _ := schedule.Build(input, now)
	timeline := schedule.BuildTimeline(items, overrides, now)

	c.JSON(http.StatusOK, packets.PlaylistResponse{
		ScreenID: screen.ID,
		Mode:     screen.Mode,
		Items:    items,
		Timeline: timeline,
		Overlays: p.eligibleOverlays(now, overlays),
	})
}

// loadScreenState gathers everything a playlist build needs and splits
// applicable broadcasts into playlist members and upcoming overrides.
func (p *PlaylistController) loadScreenState(screen model.Screen, now time.Time) (schedule.BuildInput, []schedule.Override, error) {
	input := schedule.BuildInput{Screen: screen}

	var err error
	if input.Periods, err = db.ListPeriodsForScreen(screen.ID); err != nil {
		return input, nil, err
	}
	if input.Bookings, err = db.ListActiveBookingsForScreen(screen.ID); err != nil {
		return input, nil, err
	}
	if input.Internal, err = db.ListInternalContentForScreen(screen.ID); err != nil {
		return input, nil, err
	}
	if input.AdSales, err = db.ListAdSalesContentForScreen(screen.ID); err != nil {
		return input, nil, err
	}
	if input.Fillers, err = db.ListFillersForScreen(screen.ID); err != nil {
		return input, nil, err
	}

	defaultInternal := p.cache.GetInt(settings.KeyInternalContentPriority, schedule.PriorityInternal)
	for i := range input.Internal {
		if input.Internal[i].Priority == 0 {
			input.Internal[i].Priority = defaultInternal
		}
	}

	org, err := db.GetOrganizationByID(screen.OrganizationID)
	if err != nil {
		return input, nil, err
	}

	broadcasts, err := db.ListActiveBroadcasts()
	if err != nil {
		return input, nil, err
	}

	var overrides []schedule.Override
	for _, b := range broadcasts {
		if b.Type != model.BroadcastTypeContent {
			continue
		}
		if !schedule.TargetedScreen(b, screen, org) {
			continue
		}

		if b.OverridePlaylist {
			if ov, ok := overrideFor(b, now); ok {
				overrides = append(overrides, ov)
			}
			continue
		}

		if schedule.AppliesToScreen(b, screen, org, now) {
			input.ContentBroadcasts = append(input.ContentBroadcasts, b)
		}
	}

	return input, overrides, nil
}

// overrideFor decides whether an override broadcast enters this poll's
// timeline. A broadcast firing right now (immediate mode, or a scheduled
// occurrence within trigger tolerance) cuts in at now; otherwise an
// occurrence inside the horizon is placed at its exact trigger instant.
func overrideFor(b model.Broadcast, now time.Time) (schedule.Override, bool) {
	if schedule.ShouldTriggerNow(b, now) {
		return schedule.Override{Item: schedule.BroadcastOverrideItem(b), TriggerAt: now}, true
	}
	if next := schedule.NextOccurrence(b, now); next != nil && next.Sub(now) <= overrideHorizon {
		return schedule.Override{Item: schedule.BroadcastOverrideItem(b), TriggerAt: *next}, true
	}
	return schedule.Override{}, false
}

// reconcileOverlays persists the expiry sweep and returns the overlay list
// with the sweep's mutations applied.
func (p *PlaylistController) reconcileOverlays(now time.Time, overlays []model.ScreenOverlay) []model.ScreenOverlay {
	changed, events := schedule.ReconcileOverlays(now, overlays)
	if len(changed) == 0 {
		return overlays
	}

	for _, ev := range events {
		switch ev.Type {
		case "expired":
			if err := db.DeactivateOverlay(ev.OverlayID); err != nil {
				log.Error().Err(err).Int("overlay_id", ev.OverlayID).Msg("overlay expiry persist failed")
			}
		case "resumed":
			if err := db.ResumeOverlaysPausedBy(ev.BroadcastID); err != nil {
				log.Error().Err(err).Int("broadcast_id", ev.BroadcastID).Msg("overlay resume persist failed")
			}
		}
	}

	byID := make(map[int]model.ScreenOverlay, len(changed))
	for _, o := range changed {
		byID[o.ID] = o
	}
	out := make([]model.ScreenOverlay, 0, len(overlays))
	for _, o := range overlays {
		if updated, ok := byID[o.ID]; ok {
			out = append(out, updated)
			continue
		}
		out = append(out, o)
	}
	return out
}

// eligibleOverlays filters to overlays the device should render right now
// and advances their passage counters.
func (p *PlaylistController) eligibleOverlays(now time.Time, overlays []model.ScreenOverlay) []model.ScreenOverlay {
	out := make([]model.ScreenOverlay, 0, len(overlays))
	for _, o := range overlays {
		if !o.IsActive || o.IsPaused {
			continue
		}

		eligible, needsReset := schedule.OverlayEligible(o, now)
		if needsReset {
			if err := db.ResetPassageCount(o.ID, now); err != nil {
				log.Error().Err(err).Int("overlay_id", o.ID).Msg("passage reset persist failed")
				continue
			}
			o.CurrentPassageCount = 0
			o.LastPassageReset = &now
			eligible, _ = schedule.OverlayEligible(o, now)
		}
		if !eligible {
			continue
		}

		if o.FrequencyType == model.FrequencyPassage {
			if err := db.IncrementPassageCount(o.ID); err != nil {
				log.Error().Err(err).Int("overlay_id", o.ID).Msg("passage increment failed")
			} else {
				o.CurrentPassageCount++
			}
		}
		out = append(out, o)
	}
	return out
}

// reportPlayback records one completed play of a booked content item.
func (p *PlaylistController) reportPlayback(c *gin.Context) {
	var request packets.PlaybackReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	screen, err := db.GetScreenByDeviceID(&request.DeviceID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized device"})
		return
	}

	booking, err := db.GetBookingByID(request.BookingID)
	if err != nil || booking.ScreenID != screen.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found on this screen"})
		return
	}

	updated, err := db.RecordPlayback(request.BookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record playback"})
		return
	}

	if updated.Status == model.BookingStatusCompleted && booking.Status != model.BookingStatusCompleted {
		log.Info().Int("booking_id", updated.ID).Int("screen_id", screen.ID).Msg("booking completed")
	}

	c.JSON(http.StatusOK, packets.PlaybackReportResponse{
		BookingID:      updated.ID,
		PlaysCompleted: updated.PlaysCompleted,
		NumPlays:       updated.NumPlays,
		Status:         updated.Status,
	})
}

// Package dispatch fires broadcasts: immediately on creation, and on a
// ticker for scheduled/recurring ones.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

var (
	firedMu   sync.Mutex
	lastFired = make(map[int]time.Time)
)

// refireGuard suppresses duplicate fires of the same broadcast while a
// single trigger instant is still inside the tick tolerance.
const refireGuard = 5 * time.Second

// pruneFired drops dedup entries older than the guard so the map stays
// bounded by the number of broadcasts firing in any one guard window.
func pruneFired(now time.Time) {
	firedMu.Lock()
	for id, fired := range lastFired {
		if now.Sub(fired) >= refireGuard {
			delete(lastFired, id)
		}
	}
	firedMu.Unlock()
}

// Run polls scheduled broadcasts once per interval and fires the ones whose
// trigger instant has arrived. Blocks until ctx is done.
func Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick(schedule.Now())
		}
	}
}

func tick(now time.Time) {
	pruneFired(now)

	broadcasts, err := db.ListActiveBroadcasts()
	if err != nil {
		log.Error().Err(err).Msg("dispatch: could not load broadcasts")
		return
	}

	for _, b := range broadcasts {
		if b.ScheduleMode != model.ScheduleModeScheduled {
			continue
		}
		if !schedule.ShouldTriggerNow(b, now) {
			continue
		}

		firedMu.Lock()
		if fired, ok := lastFired[b.ID]; ok && now.Sub(fired) < refireGuard {
			firedMu.Unlock()
			continue
		}
		lastFired[b.ID] = now
		firedMu.Unlock()

		if err := FireBroadcast(b, now); err != nil {
			log.Error().Err(err).Int("broadcast_id", b.ID).Msg("dispatch: fire failed")
		}
	}
}

// FireBroadcast applies a broadcast to every screen it targets. Overlay
// broadcasts pause colliding overlays and inject a new one; content
// broadcasts only nudge targeted devices so their next poll picks the
// broadcast up from the playlist build.
func FireBroadcast(b model.Broadcast, now time.Time) error {
	screens, err := db.ListScreens()
	if err != nil {
		return err
	}
	orgs, err := db.ListOrganizations()
	if err != nil {
		return err
	}
	orgByID := make(map[int]model.Organization, len(orgs))
	for _, o := range orgs {
		orgByID[o.ID] = o
	}

	fired := 0
	for _, screen := range screens {
		if !screen.IsActive {
			continue
		}
		if !schedule.AppliesToScreen(b, screen, orgByID[screen.OrganizationID], now) {
			continue
		}

		if b.Type == model.BroadcastTypeOverlay {
			if err := injectOverlay(b, screen, now); err != nil {
				log.Error().Err(err).Int("broadcast_id", b.ID).Int("screen_id", screen.ID).
					Msg("dispatch: overlay injection failed")
				continue
			}
		}

		middleware.RefreshScreen(screen.DeviceID)
		fired++
	}

	log.Info().Int("broadcast_id", b.ID).Str("type", b.Type).Int("screens", fired).
		Msg("broadcast dispatched")
	return nil
}

func injectOverlay(b model.Broadcast, screen model.Screen, now time.Time) error {
	existing, err := db.ListOverlaysForScreen(screen.ID)
	if err != nil {
		return err
	}

	pauseIDs, overlay := schedule.PlanBroadcastOverlay(existing, b, screen.ID, now)
	if len(pauseIDs) > 0 {
		if err := db.PauseOverlays(pauseIDs, b.ID, now); err != nil {
			return err
		}
	}
	_, err = db.CreateOverlay(overlay)
	return err
}

// CancelBroadcast deactivates a broadcast, removes the overlays it injected
// and resumes whatever those overlays had paused.
func CancelBroadcast(b model.Broadcast) error {
	if err := db.SetBroadcastActive(b.ID, false); err != nil {
		return err
	}
	if b.Type == model.BroadcastTypeOverlay {
		if err := db.DeactivateOverlaysForBroadcast(b.ID); err != nil {
			return err
		}
		if err := db.ResumeOverlaysPausedBy(b.ID); err != nil {
			return err
		}
	}

	screens, err := db.ListScreens()
	if err != nil {
		return err
	}
	orgs, err := db.ListOrganizations()
	if err != nil {
		return err
	}
	orgByID := make(map[int]model.Organization, len(orgs))
	for _, o := range orgs {
		orgByID[o.ID] = o
	}
	for _, screen := range screens {
		if schedule.TargetedScreen(b, screen, orgByID[screen.OrganizationID]) {
			middleware.RefreshScreen(screen.DeviceID)
		}
	}
	return nil
}

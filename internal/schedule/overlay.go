package schedule

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// OverlayEvent records one state transition produced by a reconcile pass.
// The caller persists the mutated overlays and may log or publish events.
type OverlayEvent struct {
	Type        string `json:"type"` // "expired", "resumed", "passage_reset"
	OverlayID   int    `json:"overlay_id"`
	BroadcastID int    `json:"broadcast_id,omitempty"`
}

// PlanBroadcastOverlay decides what injecting a firing broadcast overlay
// onto a screen does: which existing overlays to pause, and the new overlay
// row to create. Pure; the db layer applies the plan.
func PlanBroadcastOverlay(existing []model.ScreenOverlay, b model.Broadcast, screenID int, now time.Time) (pauseIDs []int, overlay model.ScreenOverlay) {
	position := model.OverlayPositionFooter
	if b.OverlayPosition != nil {
		position = *b.OverlayPosition
	}

	for _, o := range existing {
		if o.ScreenID == screenID && o.Position == position && o.IsActive && !o.IsPaused {
			pauseIDs = append(pauseIDs, o.ID)
		}
	}

	kind := "ticker"
	if b.OverlayKind != nil {
		kind = *b.OverlayKind
	}
	broadcastID := b.ID
	overlay = model.ScreenOverlay{
		ScreenID:      screenID,
		Source:        model.OverlaySourceBroadcast,
		BroadcastID:   &broadcastID,
		Type:          kind,
		Message:       b.Message,
		ImageURL:      b.ImageURL,
		Position:      position,
		Priority:      model.BroadcastInjectedPriority,
		IsActive:      true,
		FrequencyType: model.FrequencyAlways,
		StartTime:     &now,
		EndTime:       b.EndDatetime,
	}
	return pauseIDs, overlay
}

// ReconcileOverlays is the idempotent expiry sweep run at the top of every
// playlist or overlay read: broadcast-sourced overlays past their end time
// are deactivated and every overlay they had paused is resumed. It returns
// the mutated copies and the events describing what changed; overlays not
// returned were untouched.
func ReconcileOverlays(now time.Time, overlays []model.ScreenOverlay) ([]model.ScreenOverlay, []OverlayEvent) {
	work := make([]model.ScreenOverlay, len(overlays))
	copy(work, overlays)

	touched := make(map[int]bool)
	var events []OverlayEvent

	expiredBroadcasts := make(map[int]bool)
	for i := range work {
		o := &work[i]
		if o.Source != model.OverlaySourceBroadcast || !o.IsActive {
			continue
		}
		if o.EndTime == nil || now.Before(*o.EndTime) {
			continue
		}
		o.IsActive = false
		touched[i] = true
		ev := OverlayEvent{Type: "expired", OverlayID: o.ID}
		if o.BroadcastID != nil {
			ev.BroadcastID = *o.BroadcastID
			expiredBroadcasts[*o.BroadcastID] = true
		}
		events = append(events, ev)
	}

	// Both sweeps mutate the same working copy, so an overlay that expires
	// and resumes in one pass comes back as a single entry carrying both
	// transitions.
	for i := range work {
		o := &work[i]
		if !o.IsPaused || o.PausedByBroadcastID == nil {
			continue
		}
		if !expiredBroadcasts[*o.PausedByBroadcastID] {
			continue
		}
		broadcastID := *o.PausedByBroadcastID
		o.IsPaused = false
		o.PausedByBroadcastID = nil
		o.PausedAt = nil
		touched[i] = true
		events = append(events, OverlayEvent{Type: "resumed", OverlayID: o.ID, BroadcastID: broadcastID})
	}

	var changed []model.ScreenOverlay
	for i := range work {
		if touched[i] {
			changed = append(changed, work[i])
		}
	}
	return changed, events
}

// OverlayEligible reports whether an overlay may display right now,
// enforcing pause state and the passage frequency cap. needsReset reports
// that the passage counter must be zeroed first (a bucket boundary was
// crossed); callers persist the reset and then treat the overlay as having
// a fresh counter.
func OverlayEligible(o model.ScreenOverlay, now time.Time) (eligible, needsReset bool) {
	if !o.IsActive || o.IsPaused {
		return false, false
	}
	if o.FrequencyType != model.FrequencyPassage || o.PassageLimit == nil {
		return true, false
	}
	if ShouldResetPassage(o, now) {
		return true, true
	}
	return o.CurrentPassageCount < *o.PassageLimit, false
}

// ShouldResetPassage reports whether the passage counter's bucket boundary
// has been crossed since the last reset.
func ShouldResetPassage(o model.ScreenOverlay, now time.Time) bool {
	if o.LastPassageReset == nil {
		return true
	}
	last := *o.LastPassageReset
	if !sameDate(last, now) {
		return true
	}
	return PassageBucket(o.PassageReset, now) != PassageBucket(o.PassageReset, last)
}

// PassageBucket names the reset bucket the instant falls into: calendar day,
// ISO week, or one of five fixed dayparts.
func PassageBucket(granularity string, t time.Time) string {
	switch granularity {
	case model.PassageResetWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.PassageResetDaypart:
		return fmt.Sprintf("%s@%s", Daypart(t.Hour()), t.Format("2006-01-02"))
	default:
		return t.Format("2006-01-02")
	}
}

// Daypart maps an hour of day to one of the five fixed clock buckets.
func Daypart(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 14:
		return "noon"
	case hour >= 14 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

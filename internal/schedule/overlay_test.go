package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func TestPlanBroadcastOverlayPausesSamePosition(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	existing := []model.ScreenOverlay{
		{ID: 1, ScreenID: 3, Position: model.OverlayPositionFooter, IsActive: true},
		{ID: 2, ScreenID: 3, Position: model.OverlayPositionHeader, IsActive: true},
		{ID: 3, ScreenID: 3, Position: model.OverlayPositionFooter, IsActive: true, IsPaused: true},
		{ID: 4, ScreenID: 3, Position: model.OverlayPositionFooter, IsActive: false},
		{ID: 5, ScreenID: 9, Position: model.OverlayPositionFooter, IsActive: true},
	}
	b := model.Broadcast{
		ID:              7,
		Type:            model.BroadcastTypeOverlay,
		Message:         strPtr("breaking"),
		OverlayPosition: strPtr(model.OverlayPositionFooter),
	}

	pauseIDs, overlay := PlanBroadcastOverlay(existing, b, 3, now)

	// Only the active, unpaused footer overlay on this screen is paused.
	assert.Equal(t, []int{1}, pauseIDs)
	assert.Equal(t, model.BroadcastInjectedPriority, overlay.Priority)
	assert.Equal(t, model.OverlaySourceBroadcast, overlay.Source)
	require.NotNil(t, overlay.BroadcastID)
	assert.Equal(t, 7, *overlay.BroadcastID)
	assert.Equal(t, 3, overlay.ScreenID)
}

// Pausing overlay O via broadcast B, then expiring B, always leaves O
// unpaused with no paused_by reference.
func TestReconcileResumesVictimsOfExpiredBroadcast(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	broadcastID := 7
	expired := now.Add(-time.Minute)
	pausedAt := now.Add(-time.Hour)

	overlays := []model.ScreenOverlay{
		{
			ID: 10, ScreenID: 3,
			Source:      model.OverlaySourceBroadcast,
			BroadcastID: &broadcastID,
			IsActive:    true,
			EndTime:     &expired,
		},
		{
			ID: 1, ScreenID: 3,
			Source:              model.OverlaySourceManual,
			IsActive:            true,
			IsPaused:            true,
			PausedByBroadcastID: &broadcastID,
			PausedAt:            &pausedAt,
		},
	}

	changed, events := ReconcileOverlays(now, overlays)
	require.Len(t, changed, 2)
	require.Len(t, events, 2)

	assert.False(t, changed[0].IsActive, "broadcast overlay deactivated")
	assert.Equal(t, "expired", events[0].Type)

	resumed := changed[1]
	assert.False(t, resumed.IsPaused)
	assert.Nil(t, resumed.PausedByBroadcastID)
	assert.Nil(t, resumed.PausedAt)
	assert.Equal(t, "resumed", events[1].Type)
	assert.Equal(t, 7, events[1].BroadcastID)
}

func TestReconcileIsIdempotentAndLeavesLiveOverlaysAlone(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	broadcastID := 7
	future := now.Add(time.Hour)

	overlays := []model.ScreenOverlay{
		{ID: 10, Source: model.OverlaySourceBroadcast, BroadcastID: &broadcastID, IsActive: true, EndTime: &future},
		{ID: 11, Source: model.OverlaySourceManual, IsActive: true},
	}

	changed, events := ReconcileOverlays(now, overlays)
	assert.Empty(t, changed)
	assert.Empty(t, events)
}

func TestDaypartBuckets(t *testing.T) {
	cases := map[int]string{
		6: "morning", 11: "morning",
		12: "noon", 13: "noon",
		14: "afternoon", 17: "afternoon",
		18: "evening", 21: "evening",
		22: "night", 2: "night", 5: "night",
	}
	for hour, want := range cases {
		assert.Equal(t, want, Daypart(hour), "hour %d", hour)
	}
}

func TestPassageResetOnBucketBoundary(t *testing.T) {
	limit := 3
	base := model.ScreenOverlay{
		IsActive:      true,
		FrequencyType: model.FrequencyPassage,
		PassageLimit:  &limit,
	}

	morning := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC)

	// Daypart granularity: crossing morning -> afternoon resets.
	o := base
	o.PassageReset = model.PassageResetDaypart
	o.CurrentPassageCount = 3
	o.LastPassageReset = &morning
	assert.True(t, ShouldResetPassage(o, afternoon))
	assert.False(t, ShouldResetPassage(o, morning.Add(time.Hour)))

	// Day granularity: same day no reset, next day resets.
	o.PassageReset = model.PassageResetDay
	assert.False(t, ShouldResetPassage(o, afternoon))
	assert.True(t, ShouldResetPassage(o, nextDay))

	// Week granularity: ISO week boundary resets.
	o.PassageReset = model.PassageResetWeek
	sunday := time.Date(2026, 9, 13, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	o.LastPassageReset = &sunday
	assert.True(t, ShouldResetPassage(o, monday))
}

func TestOverlayEligiblePassageCap(t *testing.T) {
	now := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	limit := 2
	o := model.ScreenOverlay{
		IsActive:         true,
		FrequencyType:    model.FrequencyPassage,
		PassageLimit:     &limit,
		PassageReset:     model.PassageResetDay,
		LastPassageReset: &now,
	}

	o.CurrentPassageCount = 1
	eligible, reset := OverlayEligible(o, now.Add(time.Minute))
	assert.True(t, eligible)
	assert.False(t, reset)

	o.CurrentPassageCount = 2
	eligible, _ = OverlayEligible(o, now.Add(time.Minute))
	assert.False(t, eligible, "at the cap the overlay stops displaying")

	// Next day the boundary crossing makes it eligible again via reset.
	eligible, reset = OverlayEligible(o, now.AddDate(0, 0, 1))
	assert.True(t, eligible)
	assert.True(t, reset)

	paused := o
	paused.IsPaused = true
	eligible, _ = OverlayEligible(paused, now)
	assert.False(t, eligible)
}

// An overlay that expires and is resumed in the same sweep comes back as one
// entry carrying both transitions, not a live-looking duplicate.
func TestReconcileMergesExpiryAndResumeOnOneOverlay(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	pauser := 7
	self := 8
	expired := now.Add(-time.Minute)
	pausedAt := now.Add(-time.Hour)

	overlays := []model.ScreenOverlay{
		{
			ID: 10, ScreenID: 3,
			Source:      model.OverlaySourceBroadcast,
			BroadcastID: &pauser,
			IsActive:    true,
			EndTime:     &expired,
		},
		{
			ID: 11, ScreenID: 3,
			Source:              model.OverlaySourceBroadcast,
			BroadcastID:         &self,
			IsActive:            true,
			EndTime:             &expired,
			IsPaused:            true,
			PausedByBroadcastID: &pauser,
			PausedAt:            &pausedAt,
		},
	}

	changed, events := ReconcileOverlays(now, overlays)
	require.Len(t, changed, 2)
	require.Len(t, events, 3)

	seen := make(map[int]int)
	for _, o := range changed {
		seen[o.ID]++
	}
	assert.Equal(t, 1, seen[10])
	assert.Equal(t, 1, seen[11], "one merged entry, not one per transition")

	for _, o := range changed {
		if o.ID == 11 {
			assert.False(t, o.IsActive, "expiry must survive the resume merge")
			assert.False(t, o.IsPaused)
			assert.Nil(t, o.PausedByBroadcastID)
		}
	}
}

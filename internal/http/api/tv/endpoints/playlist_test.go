package endpoints

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
	"github.com/Nixie-Tech-LLC/argus/internal/schedule"
)

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func overrideBroadcast() model.Broadcast {
	return model.Broadcast{
		ID:               9,
		Name:             "takeover",
		Type:             model.BroadcastTypeContent,
		ContentURL:       strPtr("https://cdn.example.com/takeover.mp4"),
		ContentType:      strPtr("video"),
		DurationSeconds:  20,
		OrgFilter:        model.OrgFilterAll,
		ScheduleMode:     model.ScheduleModeImmediate,
		RecurrenceType:   model.RecurrenceNone,
		OverridePlaylist: true,
		IsActive:         true,
	}
}

func TestOverrideForImmediateBroadcastCutsInNow(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	b := overrideBroadcast()

	ov, ok := overrideFor(b, now)
	require.True(t, ok)
	assert.Equal(t, now, ov.TriggerAt)
	assert.Equal(t, b.ID, ov.Item.ID)
	assert.Equal(t, schedule.CategoryBroadcast, ov.Item.Category)
}

func TestOverrideForScheduledAtExactTriggerInstant(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	b := overrideBroadcast()
	b.ScheduleMode = model.ScheduleModeScheduled
	b.ScheduledDatetime = timePtr(now)

	ov, ok := overrideFor(b, now)
	require.True(t, ok)
	assert.Equal(t, now, ov.TriggerAt)
}

func TestOverrideForUpcomingOccurrenceUsesTriggerTime(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	at := now.Add(3 * time.Minute)
	b := overrideBroadcast()
	b.ScheduleMode = model.ScheduleModeScheduled
	b.ScheduledDatetime = timePtr(at)

	ov, ok := overrideFor(b, now)
	require.True(t, ok)
	assert.Equal(t, at, ov.TriggerAt)
}

func TestOverrideForSkipsFarAndInactiveBroadcasts(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	far := overrideBroadcast()
	far.ScheduleMode = model.ScheduleModeScheduled
	far.ScheduledDatetime = timePtr(now.Add(overrideHorizon + time.Minute))
	_, ok := overrideFor(far, now)
	assert.False(t, ok)

	dead := overrideBroadcast()
	dead.IsActive = false
	_, ok = overrideFor(dead, now)
	assert.False(t, ok)
}

// An immediate override landing 12s into a 30s filler yields a 12s partial
// entry, the override, then the filler's remaining 18s.
func TestImmediateOverrideSplitsRunningFiller(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	now := start.Add(12 * time.Second)

	filler := schedule.Item{ID: 1, Type: "video", Duration: 30, Category: schedule.CategoryFiller}

	ov, ok := overrideFor(overrideBroadcast(), now)
	require.True(t, ok)

	entries := schedule.BuildTimeline([]schedule.Item{filler}, []schedule.Override{{
		Item:      ov.Item,
		TriggerAt: ov.TriggerAt,
	}}, start)

	require.Len(t, entries, 3)
	assert.True(t, entries[0].Partial)
	assert.Equal(t, 12, entries[0].Item.Duration)
	assert.Equal(t, ov.Item.ID, entries[1].Item.ID)
	assert.Equal(t, now, entries[1].StartAt)
	assert.False(t, entries[2].Partial)
	assert.Equal(t, 18, entries[2].Item.Duration)
}

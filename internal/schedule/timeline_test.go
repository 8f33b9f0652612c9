package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An override firing 12 seconds into a 30-second filler splits it into a
// 12-second partial entry, the override, then the remaining 18 seconds.
func TestTimelineSplitsOverrunItem(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	filler := Item{ID: 1, Duration: 30, Category: CategoryFiller, Name: "filler"}
	override := Override{
		Item:      Item{ID: 9, Duration: 20, Category: CategoryBroadcast, Name: "flash"},
		TriggerAt: now.Add(12 * time.Second),
	}

	entries := BuildTimeline([]Item{filler}, []Override{override}, now)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Item.ID)
	assert.Equal(t, 12, entries[0].Item.Duration)
	assert.True(t, entries[0].Partial)
	assert.Equal(t, now, entries[0].StartAt)

	assert.Equal(t, 9, entries[1].Item.ID)
	assert.Equal(t, now.Add(12*time.Second), entries[1].StartAt)
	assert.False(t, entries[1].Partial)

	assert.Equal(t, 1, entries[2].Item.ID)
	assert.Equal(t, 18, entries[2].Item.Duration)
	assert.False(t, entries[2].Partial)
	assert.Equal(t, now.Add(32*time.Second), entries[2].StartAt)
}

func TestTimelineOverrideOnItemBoundary(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	base := []Item{
		{ID: 1, Duration: 10},
		{ID: 2, Duration: 10},
	}
	override := Override{
		Item:      Item{ID: 9, Duration: 5},
		TriggerAt: now.Add(10 * time.Second),
	}

	entries := BuildTimeline(base, []Override{override}, now)
	require.Len(t, entries, 3)
	assert.Equal(t, []int{1, 9, 2}, []int{entries[0].Item.ID, entries[1].Item.ID, entries[2].Item.ID})
	for _, e := range entries {
		assert.False(t, e.Partial)
	}
	assert.Equal(t, now.Add(15*time.Second), entries[2].StartAt)
}

func TestTimelinePastTriggerFiresImmediately(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	base := []Item{{ID: 1, Duration: 30}}
	override := Override{
		Item:      Item{ID: 9, Duration: 10},
		TriggerAt: now.Add(-5 * time.Second),
	}

	entries := BuildTimeline(base, []Override{override}, now)
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[0].Item.ID)
	assert.Equal(t, now, entries[0].StartAt)
	assert.Equal(t, 1, entries[1].Item.ID)
	assert.Equal(t, now.Add(10*time.Second), entries[1].StartAt)
}

func TestTimelineMultipleOverrides(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	base := []Item{
		{ID: 1, Duration: 60},
		{ID: 2, Duration: 60},
	}
	overrides := []Override{
		{Item: Item{ID: 8, Duration: 10}, TriggerAt: now.Add(90 * time.Second)},
		{Item: Item{ID: 9, Duration: 10}, TriggerAt: now.Add(30 * time.Second)},
	}

	entries := BuildTimeline(base, overrides, now)
	require.Len(t, entries, 6)

	// 0-30s: first half of item 1, then override 9, then item 1's tail
	// (30s), then 20s of item 2, override 8 at 90s, item 2's tail.
	assert.Equal(t, 1, entries[0].Item.ID)
	assert.True(t, entries[0].Partial)
	assert.Equal(t, 30, entries[0].Item.Duration)
	assert.Equal(t, 9, entries[1].Item.ID)
	assert.Equal(t, 1, entries[2].Item.ID)
	assert.Equal(t, 30, entries[2].Item.Duration)
	assert.Equal(t, 2, entries[3].Item.ID)
	assert.True(t, entries[3].Partial)
	assert.Equal(t, 20, entries[3].Item.Duration)
	assert.Equal(t, 8, entries[4].Item.ID)
	assert.Equal(t, 2, entries[5].Item.ID)
	assert.Equal(t, 40, entries[5].Item.Duration)
}

func TestTimelineEmptyBase(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	override := Override{Item: Item{ID: 9, Duration: 10}, TriggerAt: now.Add(5 * time.Second)}

	entries := BuildTimeline(nil, []Override{override}, now)
	require.Len(t, entries, 1)
	assert.Equal(t, override.TriggerAt, entries[0].StartAt)
}

package schedule

import (
	"sort"
	"time"
)

// Override is a broadcast item that must start at its exact trigger time,
// cutting into whatever the base playlist would otherwise be showing.
type Override struct {
	Item      Item
	TriggerAt time.Time
}

// TimelineEntry is one scheduled item in the resolved playback timeline.
// Partial marks the leading fragment of an item that an override split; the
// remainder resumes as a fresh entry after the override finishes.
type TimelineEntry struct {
	Item    Item      `json:"item"`
	StartAt time.Time `json:"start_at"`
	Partial bool      `json:"partial"`
}

// BuildTimeline walks the base playlist from now, inserting each override at
// its exact trigger instant. An item playing when an override fires is split
// into a partial entry sized to the remaining time, with the cut portion
// pushed back to resume immediately after the override.
func BuildTimeline(base []Item, overrides []Override, now time.Time) []TimelineEntry {
	queue := make([]Item, len(base))
	copy(queue, base)

	pending := make([]Override, len(overrides))
	copy(pending, overrides)
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].TriggerAt.Before(pending[j].TriggerAt)
	})

	var out []TimelineEntry
	clock := now

	for _, ov := range pending {
		trigger := ov.TriggerAt
		if trigger.Before(clock) {
			trigger = clock
		}
		// Consume base items until the next one would cross the trigger.
		for len(queue) > 0 {
			next := queue[0]
			end := clock.Add(time.Duration(next.Duration) * time.Second)
			if end.After(trigger) {
				break
			}
			queue = queue[1:]
			out = append(out, TimelineEntry{Item: next, StartAt: clock})
			clock = end
		}
		// Split the item that would overrun the trigger.
		if len(queue) > 0 && clock.Before(trigger) {
			head := queue[0]
			queue = queue[1:]
			played := int(trigger.Sub(clock).Seconds())
			partial := head
			partial.Duration = played
			out = append(out, TimelineEntry{Item: partial, StartAt: clock, Partial: true})

			rest := head
			rest.Duration = head.Duration - played
			if rest.Duration > 0 {
				queue = append([]Item{rest}, queue...)
			}
			clock = trigger
		}
		out = append(out, TimelineEntry{Item: ov.Item, StartAt: trigger})
		clock = trigger.Add(time.Duration(ov.Item.Duration) * time.Second)
	}

	for _, it := range queue {
		out = append(out, TimelineEntry{Item: it, StartAt: clock})
		clock = clock.Add(time.Duration(it.Duration) * time.Second)
	}
	return out
}

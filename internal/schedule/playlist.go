package schedule

import (
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// Fixed priority weights for the content tiers that don't carry their own.
const (
	PriorityPaid     = 100
	PriorityInternal = 80
	PriorityAdSales  = 50
	PriorityFiller   = 20
)

// Item categories in playlist responses.
const (
	CategoryPaid      = "paid"
	CategoryInternal  = "internal"
	CategoryAdSales   = "ad_sales"
	CategoryFiller    = "filler"
	CategoryBroadcast = "broadcast"
)

// Item is one playlist entry handed to a display client.
type Item struct {
	ID             int    `json:"id"`
	Type           string `json:"type"`
	URL            string `json:"url"`
	Duration       int    `json:"duration"`
	Priority       int    `json:"priority"`
	Category       string `json:"category"`
	Name           string `json:"name"`
	BookingID      *int   `json:"booking_id,omitempty"`
	RemainingPlays *int   `json:"remaining_plays,omitempty"`
}

// StreamDescriptor replaces the playlist for screens in IPTV mode.
type StreamDescriptor struct {
	URL string `json:"url"`
}

// BuildInput is the gathered screen state for one playlist evaluation.
// ContentBroadcasts must already be filtered to broadcasts of type content
// that apply to this screen.
type BuildInput struct {
	Screen            model.Screen
	Periods           []model.Period
	Bookings          []model.Booking
	Internal          []model.InternalContent
	AdSales           []model.AdSalesContent
	Fillers           []model.Filler
	ContentBroadcasts []model.Broadcast
}

// Build merges paid, internal, ad-sales, filler and non-override broadcast
// content into one priority-ordered playlist for the current instant.
// Screens in IPTV mode get an empty playlist plus a stream descriptor;
// overlays are the caller's concern either way.
func Build(in BuildInput, now time.Time) ([]Item, *StreamDescriptor) {
	if in.Screen.Mode == model.ScreenModeIPTV {
		var stream *StreamDescriptor
		if in.Screen.StreamURL != nil {
			stream = &StreamDescriptor{URL: *in.Screen.StreamURL}
		} else {
			stream = &StreamDescriptor{}
		}
		return nil, stream
	}

	current := CurrentPeriod(in.Periods, now)
	var items []Item

	for _, b := range in.Bookings {
		if !paidBookingPlayable(b, current) {
			continue
		}
		bookingID := b.ID
		remaining := b.RemainingPlays()
		items = append(items, Item{
			ID:             b.ID,
			Type:           b.ContentType,
			URL:            b.ContentURL,
			Duration:       b.DurationSeconds,
			Priority:       PriorityPaid,
			Category:       CategoryPaid,
			Name:           b.ContentName,
			BookingID:      &bookingID,
			RemainingPlays: &remaining,
		})
	}

	for _, c := range in.Internal {
		if !c.ActiveOn(now) {
			continue
		}
		priority := c.Priority
		if priority == 0 {
			priority = PriorityInternal
		}
		items = append(items, Item{
			ID:       c.ID,
			Type:     c.Type,
			URL:      c.URL,
			Duration: c.DurationSeconds,
			Priority: priority,
			Category: CategoryInternal,
			Name:     c.Name,
		})
	}

	for _, a := range in.AdSales {
		if !a.ActiveOn(now) {
			continue
		}
		items = append(items, Item{
			ID:       a.ID,
			Type:     a.Type,
			URL:      a.URL,
			Duration: a.DurationSeconds,
			Priority: PriorityAdSales,
			Category: CategoryAdSales,
			Name:     a.Name,
		})
	}

	for _, f := range in.Fillers {
		if !f.IsActive {
			continue
		}
		items = append(items, Item{
			ID:       f.ID,
			Type:     f.Type,
			URL:      f.URL,
			Duration: f.DurationSeconds,
			Priority: PriorityFiller,
			Category: CategoryFiller,
			Name:     f.Name,
		})
	}

	for _, b := range in.ContentBroadcasts {
		if b.Type != model.BroadcastTypeContent || b.OverridePlaylist {
			continue
		}
		items = append(items, broadcastItem(b))
	}

	sortByPriority(items)
	return items, nil
}

// BroadcastOverrideItem is the playlist item form of an override broadcast,
// for timeline insertion.
func BroadcastOverrideItem(b model.Broadcast) Item {
	return broadcastItem(b)
}

// broadcastItem converts a content broadcast into a playlist item carrying
// the broadcast's own priority.
func broadcastItem(b model.Broadcast) Item {
	url := ""
	if b.ContentURL != nil {
		url = *b.ContentURL
	}
	typ := "video"
	if b.ContentType != nil {
		typ = *b.ContentType
	}
	return Item{
		ID:       b.ID,
		Type:     typ,
		URL:      url,
		Duration: b.DurationSeconds,
		Priority: b.Priority(),
		Category: CategoryBroadcast,
		Name:     b.Name,
	}
}

// paidBookingPlayable applies the paid-tier gates: active booking, approved
// content, plays remaining, and period pinning against the current period.
func paidBookingPlayable(b model.Booking, current *model.Period) bool {
	if b.Status != model.BookingStatusActive {
		return false
	}
	if b.ContentStatus != model.ContentStatusApproved {
		return false
	}
	if b.PlaysCompleted >= b.NumPlays {
		return false
	}
	if b.TimePeriodID != nil {
		if current == nil || *b.TimePeriodID != current.ID {
			return false
		}
	}
	return true
}

// sortByPriority orders items by descending priority. The sort is stable
// and collection order is deterministic (category tier, then id), so ties
// reproduce across polls.
func sortByPriority(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].ID < items[j].ID
	})
}

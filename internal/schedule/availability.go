package schedule

import (
	"time"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// AvailabilityQuery carries everything the calculator needs. The caller
// loads screen state from the store; the computation itself is pure.
type AvailabilityQuery struct {
	Screen   model.Screen
	Periods  []model.Period
	Slots    []model.Slot
	Bookings []model.Booking

	Start time.Time
	End   time.Time

	// Optional filters. A filter that matches nothing yields a
	// zero-availability result, never an error.
	PeriodID    *int
	SlotID      *int
	ContentType *string

	Now time.Time
}

// DayAvailability is the per-calendar-day breakdown.
type DayAvailability struct {
	Date             string `json:"date"`
	AvailableSeconds int    `json:"available_seconds"`
	AvailablePlays   int    `json:"available_plays"`
}

// PeriodAvailability aggregates one period across the whole range.
type PeriodAvailability struct {
	PeriodID         int     `json:"period_id"`
	Name             string  `json:"name"`
	StartHour        int     `json:"start_hour"`
	EndHour          int     `json:"end_hour"`
	PriceMultiplier  float64 `json:"price_multiplier"`
	AvailableSeconds int     `json:"available_seconds"`
	AvailablePlays   int     `json:"available_plays"`
}

// AvailabilityResult is the commerce-facing availability response.
type AvailabilityResult struct {
	TotalAvailableSeconds int                  `json:"total_available_seconds"`
	AvailablePlays        int                  `json:"available_plays"`
	SlotDurationSeconds   int                  `json:"slot_duration"`
	NumDays               int                  `json:"num_days"`
	Days                  []DayAvailability    `json:"daily_breakdown"`
	Periods               []PeriodAvailability `json:"periods"`
}

// ComputeAvailability returns free seconds and plays per day and per period
// over the inclusive range, net of existing bookings and the screen's
// security buffer. Overcommitted periods clamp to zero rather than erroring.
func ComputeAvailability(q AvailabilityQuery) AvailabilityResult {
	slot := resolveSlot(q)
	periods := resolvePeriods(q)
	numDays := inclusiveDayCount(q.Start, q.End)

	out := AvailabilityResult{NumDays: numDays}
	if slot == nil || len(periods) == 0 || numDays == 0 {
		return out
	}
	out.SlotDurationSeconds = slot.DurationSeconds

	coverage := totalCoverageSeconds(q.Periods)
	knownPeriods := make(map[int]bool, len(q.Periods))
	for _, p := range q.Periods {
		knownPeriods[p.ID] = true
	}

	perPeriod := make(map[int]*PeriodAvailability, len(periods))
	for _, p := range periods {
		perPeriod[p.ID] = &PeriodAvailability{
			PeriodID:        p.ID,
			Name:            p.Name,
			StartHour:       p.StartHour,
			EndHour:         p.EndHour,
			PriceMultiplier: p.PriceMultiplier,
		}
	}

	buffer := time.Duration(q.Screen.SecurityBufferMinutes) * time.Minute
	cutoff := q.Now.Add(buffer)

	for day := dateOnly(q.Start); !day.After(dateOnly(q.End)); day = day.AddDate(0, 0, 1) {
		dayRow := DayAvailability{Date: day.Format("2006-01-02")}
		for _, p := range periods {
			usable := usablePeriodSeconds(p, day, q.Now, cutoff)
			reserved := reservedSecondsForPeriod(p, day, q.Bookings, q.Periods, coverage, knownPeriods)
			avail := usable - reserved
			if avail < 0 {
				avail = 0
			}
			dayRow.AvailableSeconds += avail
			perPeriod[p.ID].AvailableSeconds += avail
		}
		dayRow.AvailablePlays = dayRow.AvailableSeconds / slot.DurationSeconds
		out.TotalAvailableSeconds += dayRow.AvailableSeconds
		out.Days = append(out.Days, dayRow)
	}

	for _, p := range periods {
		row := perPeriod[p.ID]
		row.AvailablePlays = row.AvailableSeconds / slot.DurationSeconds
		out.Periods = append(out.Periods, *row)
	}
	out.AvailablePlays = out.TotalAvailableSeconds / slot.DurationSeconds
	return out
}

// resolveSlot picks the target slot: an explicit id filter, then a content
// type filter, then the first active slot.
func resolveSlot(q AvailabilityQuery) *model.Slot {
	for i := range q.Slots {
		s := &q.Slots[i]
		if !s.IsActive {
			continue
		}
		if q.SlotID != nil {
			if s.ID == *q.SlotID {
				return s
			}
			continue
		}
		if q.ContentType != nil && s.ContentType != *q.ContentType {
			continue
		}
		return s
	}
	return nil
}

func resolvePeriods(q AvailabilityQuery) []model.Period {
	if q.PeriodID == nil {
		return q.Periods
	}
	for _, p := range q.Periods {
		if p.ID == *q.PeriodID {
			return []model.Period{p}
		}
	}
	return nil
}

// usablePeriodSeconds is the period's wrap-aware span on the given day,
// with the portion earlier than now+buffer cut away when the day is today.
// Partial periods are cut, not zeroed.
func usablePeriodSeconds(p model.Period, day, now, cutoff time.Time) int {
	full := p.DurationSeconds()
	if !sameDate(day, now) {
		return full
	}
	start, end := periodWindowOn(p, day)
	if !cutoff.After(start) {
		return full
	}
	if !cutoff.Before(end) {
		return 0
	}
	return int(end.Sub(cutoff).Seconds())
}

// reservedSecondsForPeriod amortizes each overlapping booking's plays over
// its inclusive day count and charges this period its share. Bookings with
// no period, or referencing a period that no longer exists, are prorated
// across all periods by coverage share.
func reservedSecondsForPeriod(
	p model.Period,
	day time.Time,
	bookings []model.Booking,
	allPeriods []model.Period,
	coverage int,
	knownPeriods map[int]bool,
) int {
	reserved := 0.0
	for _, b := range bookings {
		if b.Status == model.BookingStatusRejected {
			continue
		}
		if !bookingOverlapsDay(b, day) {
			continue
		}
		perDay := amortizedSecondsPerDay(b)
		if b.TimePeriodID != nil && knownPeriods[*b.TimePeriodID] {
			if *b.TimePeriodID == p.ID {
				reserved += perDay
			}
			continue
		}
		// Unassigned (or dangling period reference): prorate by this
		// period's share of total daily coverage.
		if coverage > 0 {
			reserved += perDay * float64(p.DurationSeconds()) / float64(coverage)
		}
	}
	return int(reserved)
}

func amortizedSecondsPerDay(b model.Booking) float64 {
	days := 1
	if b.StartDate != nil && b.EndDate != nil {
		if d := inclusiveDayCount(*b.StartDate, *b.EndDate); d > 0 {
			days = d
		}
	}
	return float64(b.NumPlays) / float64(days) * float64(b.DurationSeconds)
}

func bookingOverlapsDay(b model.Booking, day time.Time) bool {
	d := dateOnly(day)
	if b.StartDate != nil && d.Before(dateOnly(*b.StartDate)) {
		return false
	}
	if b.EndDate != nil && d.After(dateOnly(*b.EndDate)) {
		return false
	}
	return true
}

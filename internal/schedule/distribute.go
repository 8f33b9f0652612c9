package schedule

import "time"

// DayAllocation is one day's share of an equitable play distribution.
type DayAllocation struct {
	Date  time.Time `json:"date"`
	Plays int       `json:"plays"`
}

// DistributePlays spreads totalPlays evenly across numDays, remainder-first:
// the first (totalPlays mod numDays) days get one extra play. A degenerate
// one-day range gets everything.
func DistributePlays(totalPlays, numDays int) []int {
	if numDays <= 0 {
		return nil
	}
	if numDays == 1 {
		return []int{totalPlays}
	}
	base := totalPlays / numDays
	remainder := totalPlays % numDays
	out := make([]int, numDays)
	for i := range out {
		out[i] = base
		if i < remainder {
			out[i]++
		}
	}
	return out
}

// DistributePlaysOverRange maps DistributePlays onto the inclusive calendar
// range [start, end].
func DistributePlaysOverRange(totalPlays int, start, end time.Time) []DayAllocation {
	days := inclusiveDayCount(start, end)
	if days <= 0 {
		return nil
	}
	counts := DistributePlays(totalPlays, days)
	out := make([]DayAllocation, days)
	for i := range counts {
		out[i] = DayAllocation{Date: dateOnly(start).AddDate(0, 0, i), Plays: counts[i]}
	}
	return out
}

func inclusiveDayCount(start, end time.Time) int {
	s, e := dateOnly(start), dateOnly(end)
	if e.Before(s) {
		return 0
	}
	// AddDate instead of Sub so DST transitions don't skew the count.
	days := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

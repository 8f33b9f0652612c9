package schedule

import (
	"time"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// CurrentPeriod returns the first period whose wrap-aware window contains
// the hour of t, or nil if no period matches.
func CurrentPeriod(periods []model.Period, t time.Time) *model.Period {
	hour := t.Hour()
	for i := range periods {
		if periods[i].ContainsHour(hour) {
			return &periods[i]
		}
	}
	return nil
}

// totalCoverageSeconds sums the wrap-aware durations of all periods. Used as
// the denominator when prorating unassigned bookings.
func totalCoverageSeconds(periods []model.Period) int {
	total := 0
	for _, p := range periods {
		total += p.DurationSeconds()
	}
	return total
}

// periodWindowOn returns the concrete start and end instants of the period's
// occurrence that begins on the given calendar day.
func periodWindowOn(p model.Period, day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), p.StartHour, 0, 0, 0, day.Location())
	end := start.Add(time.Duration(p.DurationSeconds()) * time.Second)
	return start, end
}

package schedule

import (
	"math"
	"time"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

// triggerTolerance is how far from the scheduled instant a poll may land and
// still count as "now". Display clients poll every few seconds; exact frame
// timing is not a goal.
const triggerTolerance = 2 * time.Second

// nextOccurrenceScanDays bounds the forward scan in NextOccurrence.
const nextOccurrenceScanDays = 366

// AppliesToScreen reports whether the broadcast currently targets the given
// screen. org is the screen's owning organization.
func AppliesToScreen(b model.Broadcast, screen model.Screen, org model.Organization, now time.Time) bool {
	if !broadcastActiveAt(b, now) {
		return false
	}
	if !screen.IsActive {
		return false
	}
	switch b.OrgFilter {
	case model.OrgFilterPaid:
		if !org.IsPaid {
			return false
		}
	case model.OrgFilterFree:
		if org.IsPaid {
			return false
		}
	}
	return targetMatches(b, screen, org)
}

// TargetedScreen reports whether the broadcast's targeting selects the
// screen, ignoring activation state and scheduling windows.
func TargetedScreen(b model.Broadcast, screen model.Screen, org model.Organization) bool {
	return targetMatches(b, screen, org)
}

func targetMatches(b model.Broadcast, screen model.Screen, org model.Organization) bool {
	switch {
	case b.TargetScreenID != nil:
		return *b.TargetScreenID == screen.ID
	case b.TargetOrganizationID != nil:
		return *b.TargetOrganizationID == org.ID
	case b.TargetCity != nil && b.TargetCountry != nil:
		return org.City != nil && org.Country != nil &&
			*org.City == *b.TargetCity && *org.Country == *b.TargetCountry
	case b.TargetCountry != nil:
		return org.Country != nil && *org.Country == *b.TargetCountry
	}
	// No target set: the broadcast is global.
	return true
}

func broadcastActiveAt(b model.Broadcast, now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartDatetime != nil && now.Before(*b.StartDatetime) {
		return false
	}
	if b.EndDatetime != nil && now.After(*b.EndDatetime) {
		return false
	}
	return true
}

// ShouldTriggerNow reports whether the broadcast should fire at this poll.
// Any malformed recurrence state evaluates as "does not trigger"; a display
// poll must never fail on bad broadcast rows.
func ShouldTriggerNow(b model.Broadcast, now time.Time) bool {
	if !broadcastActiveAt(b, now) {
		return false
	}
	if b.ScheduleMode == model.ScheduleModeImmediate {
		return true
	}
	if b.RecurrenceType == "" || b.RecurrenceType == model.RecurrenceNone {
		if b.ScheduledDatetime == nil {
			return false
		}
		return absDuration(now.Sub(*b.ScheduledDatetime)) <= triggerTolerance
	}
	return recurrenceFires(b, now)
}

// recurrenceFires checks the recurrence predicate at instant t.
func recurrenceFires(b model.Broadcast, t time.Time) bool {
	if b.ScheduledDatetime == nil {
		return false
	}
	sched := *b.ScheduledDatetime
	if b.RecurrenceEndDate != nil && dateOnly(t).After(dateOnly(*b.RecurrenceEndDate)) {
		return false
	}
	if dateOnly(t).Before(dateOnly(sched)) {
		return false
	}

	tod, ok := parseRecurrenceTime(b.RecurrenceTime)
	if !ok {
		return false
	}
	target := time.Date(t.Year(), t.Month(), t.Day(), tod.hour, tod.minute, tod.second, 0, t.Location())
	if absDuration(t.Sub(target)) > triggerTolerance {
		return false
	}

	interval := b.RecurrenceInterval
	if interval <= 0 {
		interval = 1
	}
	switch b.RecurrenceType {
	case model.RecurrenceDaily:
		return daysBetween(sched, t)%interval == 0
	case model.RecurrenceWeekly:
		if len(b.RecurrenceDays) > 0 {
			return weekdayInSet(t.Weekday(), b.RecurrenceDays)
		}
		return (daysBetween(sched, t)/7)%interval == 0
	case model.RecurrenceMonthly:
		return monthsBetween(sched, t)%interval == 0 && t.Day() == sched.Day()
	case model.RecurrenceCustom:
		// Custom rules carry an explicit weekday set.
		return weekdayInSet(t.Weekday(), b.RecurrenceDays)
	}
	return false
}

// NextOccurrence scans forward day by day for the first recurrence instant
// strictly after from, up to a year out. It returns nil for immediate
// broadcasts, exhausted recurrences, and one-shot schedules already past.
func NextOccurrence(b model.Broadcast, from time.Time) *time.Time {
	if b.ScheduleMode != model.ScheduleModeScheduled || b.ScheduledDatetime == nil {
		return nil
	}
	if b.RecurrenceType == "" || b.RecurrenceType == model.RecurrenceNone {
		if b.ScheduledDatetime.After(from) {
			t := *b.ScheduledDatetime
			return &t
		}
		return nil
	}
	tod, ok := parseRecurrenceTime(b.RecurrenceTime)
	if !ok {
		return nil
	}
	for i := 0; i <= nextOccurrenceScanDays; i++ {
		day := dateOnly(from).AddDate(0, 0, i)
		candidate := time.Date(day.Year(), day.Month(), day.Day(), tod.hour, tod.minute, tod.second, 0, from.Location())
		if !candidate.After(from) {
			continue
		}
		if b.RecurrenceEndDate != nil && dateOnly(candidate).After(dateOnly(*b.RecurrenceEndDate)) {
			return nil
		}
		if recurrenceFires(b, candidate) {
			return &candidate
		}
	}
	return nil
}

type timeOfDay struct {
	hour, minute, second int
}

// parseRecurrenceTime accepts "15:04:05" or "15:04". A nil or malformed
// value reports !ok so callers can refuse to trigger.
func parseRecurrenceTime(s *string) (timeOfDay, bool) {
	if s == nil {
		return timeOfDay{}, false
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return timeOfDay{hour: t.Hour(), minute: t.Minute(), second: t.Second()}, true
		}
	}
	return timeOfDay{}, false
}

// weekdayInSet matches against the stored weekday convention: Monday=0
// through Sunday=6, so {1,3} means Tuesday and Thursday.
func weekdayInSet(d time.Weekday, set []int64) bool {
	mondayIndexed := (int(d) + 6) % 7
	for _, v := range set {
		if int(v) == mondayIndexed {
			return true
		}
	}
	return false
}

func daysBetween(from, to time.Time) int {
	h := dateOnly(to).Sub(dateOnly(from)).Hours()
	return int(math.Round(h / 24))
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func strPtr(s string) *string { return &s }

func scheduledBroadcast(recurrence string, sched time.Time) model.Broadcast {
	tod := sched.Format("15:04:05")
	return model.Broadcast{
		ID:                1,
		Name:              "test",
		Type:              model.BroadcastTypeContent,
		ScheduleMode:      model.ScheduleModeScheduled,
		IsActive:          true,
		ScheduledDatetime: &sched,
		RecurrenceType:    recurrence,
		RecurrenceTime:    &tod,
	}
}

func TestImmediateBroadcastTriggersWhileActive(t *testing.T) {
	now := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	b := model.Broadcast{
		ScheduleMode:  model.ScheduleModeImmediate,
		IsActive:      true,
		StartDatetime: &start,
		EndDatetime:   &end,
	}

	assert.True(t, ShouldTriggerNow(b, now))
	assert.False(t, ShouldTriggerNow(b, end.Add(time.Minute)))

	b.IsActive = false
	assert.False(t, ShouldTriggerNow(b, now))
}

func TestOneShotScheduleTolerance(t *testing.T) {
	sched := time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC)
	b := scheduledBroadcast(model.RecurrenceNone, sched)

	assert.True(t, ShouldTriggerNow(b, sched))
	assert.True(t, ShouldTriggerNow(b, sched.Add(2*time.Second)))
	assert.True(t, ShouldTriggerNow(b, sched.Add(-2*time.Second)))
	assert.False(t, ShouldTriggerNow(b, sched.Add(3*time.Second)))
}

// Weekly broadcast pinned to Tuesday and Thursday never fires on any other
// weekday across 180 simulated days.
func TestWeeklyWeekdaySetOver180Days(t *testing.T) {
	sched := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) // a Tuesday
	b := scheduledBroadcast(model.RecurrenceWeekly, sched)
	b.RecurrenceDays = []int64{1, 3} // Tue, Thu (Monday = 0)

	for i := 0; i < 180; i++ {
		at := sched.AddDate(0, 0, i)
		fired := ShouldTriggerNow(b, at)
		wd := at.Weekday()
		if wd == time.Tuesday || wd == time.Thursday {
			assert.True(t, fired, "should fire on %s (%s)", at.Format("2006-01-02"), wd)
		} else {
			assert.False(t, fired, "must not fire on %s (%s)", at.Format("2006-01-02"), wd)
		}
	}
}

func TestDailyInterval(t *testing.T) {
	sched := time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)
	b := scheduledBroadcast(model.RecurrenceDaily, sched)
	b.RecurrenceInterval = 3

	assert.True(t, ShouldTriggerNow(b, sched))
	assert.False(t, ShouldTriggerNow(b, sched.AddDate(0, 0, 1)))
	assert.False(t, ShouldTriggerNow(b, sched.AddDate(0, 0, 2)))
	assert.True(t, ShouldTriggerNow(b, sched.AddDate(0, 0, 3)))
	assert.True(t, ShouldTriggerNow(b, sched.AddDate(0, 0, 6)))
}

func TestMonthlyRecurrence(t *testing.T) {
	sched := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	b := scheduledBroadcast(model.RecurrenceMonthly, sched)
	b.RecurrenceInterval = 2

	assert.True(t, ShouldTriggerNow(b, sched))
	assert.False(t, ShouldTriggerNow(b, time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, ShouldTriggerNow(b, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)))
	// Right month, wrong day of month.
	assert.False(t, ShouldTriggerNow(b, time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)))
}

func TestRecurrenceRespectsEndDateAndStart(t *testing.T) {
	sched := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	b := scheduledBroadcast(model.RecurrenceDaily, sched)
	endDate := sched.AddDate(0, 0, 10)
	b.RecurrenceEndDate = &endDate

	assert.False(t, ShouldTriggerNow(b, sched.AddDate(0, 0, -1)), "before first scheduled date")
	assert.True(t, ShouldTriggerNow(b, sched.AddDate(0, 0, 10)))
	assert.False(t, ShouldTriggerNow(b, sched.AddDate(0, 0, 11)), "past recurrence end date")
}

// Missing or malformed recurrence_time must evaluate as "does not trigger",
// never panic or error a display poll.
func TestMalformedRecurrenceState(t *testing.T) {
	sched := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	b := scheduledBroadcast(model.RecurrenceDaily, sched)
	b.RecurrenceTime = nil
	assert.False(t, ShouldTriggerNow(b, sched))

	b.RecurrenceTime = strPtr("not-a-time")
	assert.False(t, ShouldTriggerNow(b, sched))

	b = scheduledBroadcast(model.RecurrenceDaily, sched)
	b.ScheduledDatetime = nil
	assert.False(t, ShouldTriggerNow(b, sched))
}

func TestNextOccurrenceDaily(t *testing.T) {
	sched := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	b := scheduledBroadcast(model.RecurrenceDaily, sched)
	b.RecurrenceInterval = 2

	from := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	next := NextOccurrence(b, from)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC), *next)
}

func TestNextOccurrenceReturnsNilWhenExhausted(t *testing.T) {
	sched := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	b := scheduledBroadcast(model.RecurrenceDaily, sched)
	endDate := sched.AddDate(0, 0, 5)
	b.RecurrenceEndDate = &endDate
	assert.Nil(t, NextOccurrence(b, sched.AddDate(0, 0, 30)))

	oneShot := scheduledBroadcast(model.RecurrenceNone, sched)
	assert.Nil(t, NextOccurrence(oneShot, sched.Add(time.Hour)), "one-shot already past")

	immediate := model.Broadcast{ScheduleMode: model.ScheduleModeImmediate, IsActive: true}
	assert.Nil(t, NextOccurrence(immediate, sched))
}

func TestAppliesToScreenTargeting(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	screen := model.Screen{ID: 5, OrganizationID: 2, IsActive: true}
	org := model.Organization{ID: 2, City: strPtr("Tunis"), Country: strPtr("TN"), IsPaid: true}

	active := model.Broadcast{IsActive: true, OrgFilter: model.OrgFilterAll}

	b := active
	screenID := 5
	b.TargetScreenID = &screenID
	assert.True(t, AppliesToScreen(b, screen, org, now))
	otherScreen := 6
	b.TargetScreenID = &otherScreen
	assert.False(t, AppliesToScreen(b, screen, org, now))

	b = active
	b.TargetCity = strPtr("Tunis")
	b.TargetCountry = strPtr("TN")
	assert.True(t, AppliesToScreen(b, screen, org, now))
	b.TargetCity = strPtr("Sfax")
	assert.False(t, AppliesToScreen(b, screen, org, now))

	b = active
	b.TargetCountry = strPtr("TN")
	assert.True(t, AppliesToScreen(b, screen, org, now))

	b = active
	b.OrgFilter = model.OrgFilterFree
	assert.False(t, AppliesToScreen(b, screen, org, now), "paid org filtered out by free-only broadcast")
	b.OrgFilter = model.OrgFilterPaid
	assert.True(t, AppliesToScreen(b, screen, org, now))

	inactiveScreen := screen
	inactiveScreen.IsActive = false
	assert.False(t, AppliesToScreen(active, inactiveScreen, org, now))
}

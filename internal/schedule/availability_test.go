package schedule

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func datePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }

// Screen with one 06:00-22:00 period (57600s), one 10s image slot, one
// booking of 100 plays on a single day pinned to that period:
// available_plays = floor((57600 - 1000) / 10) = 5660.
func TestAvailabilityWorkedExample(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, ScreenID: 1, Name: "Day", StartHour: 6, EndHour: 22, PriceMultiplier: 1}
	slot := model.Slot{ID: 1, ScreenID: 1, ContentType: "image", DurationSeconds: 10, IsActive: true}
	booking := model.Booking{
		ID: 1, ScreenID: 1, SlotID: 1,
		TimePeriodID:    intPtr(1),
		DurationSeconds: 10,
		NumPlays:        100,
		StartDate:       datePtr(day),
		EndDate:         datePtr(day),
		Status:          model.BookingStatusActive,
	}

	res := ComputeAvailability(AvailabilityQuery{
		Screen:   model.Screen{ID: 1, IsActive: true},
		Periods:  []model.Period{period},
		Slots:    []model.Slot{slot},
		Bookings: []model.Booking{booking},
		Start:    day,
		End:      day,
		Now:      day.Add(-24 * time.Hour), // range is entirely in the future
	})

	assert.Equal(t, 57600-1000, res.TotalAvailableSeconds)
	assert.Equal(t, 5660, res.AvailablePlays)
	assert.Equal(t, 1, res.NumDays)
	require.Len(t, res.Days, 1)
	assert.Equal(t, 5660, res.Days[0].AvailablePlays)
}

// For bookings fully confined to a single period with no overlap,
// available + reserved must equal the period duration on every day.
func TestAvailabilityConservation(t *testing.T) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 3, ScreenID: 1, Name: "Morning", StartHour: 6, EndHour: 12, PriceMultiplier: 1.5}
	slot := model.Slot{ID: 1, ScreenID: 1, ContentType: "video", DurationSeconds: 15, IsActive: true}

	// 200 plays over 5 days = 40 plays/day = 600s/day reserved.
	booking := model.Booking{
		ID: 7, ScreenID: 1, SlotID: 1,
		TimePeriodID:    intPtr(3),
		DurationSeconds: 15,
		NumPlays:        200,
		StartDate:       datePtr(start),
		EndDate:         datePtr(end),
		Status:          model.BookingStatusActive,
	}

	res := ComputeAvailability(AvailabilityQuery{
		Screen:   model.Screen{ID: 1, IsActive: true},
		Periods:  []model.Period{period},
		Slots:    []model.Slot{slot},
		Bookings: []model.Booking{booking},
		Start:    start,
		End:      end,
		Now:      start.Add(-24 * time.Hour),
	})

	require.Len(t, res.Days, 5)
	for _, d := range res.Days {
		assert.Equal(t, period.DurationSeconds(), d.AvailableSeconds+600, "day %s", d.Date)
	}
}

func TestAvailabilityUnassignedBookingProration(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	morning := model.Period{ID: 1, Name: "Morning", StartHour: 6, EndHour: 12}  // 6h
	evening := model.Period{ID: 2, Name: "Evening", StartHour: 12, EndHour: 0} // 12h
	slot := model.Slot{ID: 1, DurationSeconds: 10, IsActive: true}

	// Unassigned: 90 plays * 10s = 900s amortized on a single day,
	// prorated 1/3 to morning (300s) and 2/3 to evening (600s).
	booking := model.Booking{
		ID: 1, DurationSeconds: 10, NumPlays: 90,
		StartDate: datePtr(day), EndDate: datePtr(day),
		Status: model.BookingStatusActive,
	}

	res := ComputeAvailability(AvailabilityQuery{
		Screen:   model.Screen{ID: 1},
		Periods:  []model.Period{morning, evening},
		Slots:    []model.Slot{slot},
		Bookings: []model.Booking{booking},
		Start:    day,
		End:      day,
		Now:      day.Add(-24 * time.Hour),
	})

	require.Len(t, res.Periods, 2)
	assert.Equal(t, morning.DurationSeconds()-300, res.Periods[0].AvailableSeconds)
	assert.Equal(t, evening.DurationSeconds()-600, res.Periods[1].AvailableSeconds)
}

// A booking whose period was deleted is treated as unassigned, not an error.
func TestAvailabilityDanglingPeriodReference(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, Name: "Day", StartHour: 0, EndHour: 0}
	slot := model.Slot{ID: 1, DurationSeconds: 10, IsActive: true}
	booking := model.Booking{
		ID: 1, TimePeriodID: intPtr(999), DurationSeconds: 10, NumPlays: 50,
		StartDate: datePtr(day), EndDate: datePtr(day),
		Status: model.BookingStatusActive,
	}

	res := ComputeAvailability(AvailabilityQuery{
		Screen:   model.Screen{ID: 1},
		Periods:  []model.Period{period},
		Slots:    []model.Slot{slot},
		Bookings: []model.Booking{booking},
		Start:    day,
		End:      day,
		Now:      day.Add(-24 * time.Hour),
	})

	assert.Equal(t, 24*3600-500, res.TotalAvailableSeconds)
}

func TestAvailabilityZeroResultOnUnmatchedFilters(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, StartHour: 6, EndHour: 22}
	slot := model.Slot{ID: 1, DurationSeconds: 10, IsActive: true}

	base := AvailabilityQuery{
		Screen:  model.Screen{ID: 1},
		Periods: []model.Period{period},
		Slots:   []model.Slot{slot},
		Start:   day,
		End:     day,
		Now:     day,
	}

	noPeriod := base
	noPeriod.PeriodID = intPtr(42)
	res := ComputeAvailability(noPeriod)
	assert.Zero(t, res.TotalAvailableSeconds)
	assert.Zero(t, res.AvailablePlays)

	noSlot := base
	noSlot.SlotID = intPtr(42)
	res = ComputeAvailability(noSlot)
	assert.Zero(t, res.TotalAvailableSeconds)

	inactiveSlot := base
	inactiveSlot.Slots = []model.Slot{{ID: 1, DurationSeconds: 10, IsActive: false}}
	res = ComputeAvailability(inactiveSlot)
	assert.Zero(t, res.TotalAvailableSeconds)
}

func TestAvailabilitySecurityBufferCutsToday(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, Name: "Day", StartHour: 6, EndHour: 22}
	slot := model.Slot{ID: 1, DurationSeconds: 10, IsActive: true}

	// Polling at 09:30 with a 30-minute buffer: everything before 10:00 is
	// gone, leaving 12h of the 16h period.
	now := time.Date(2026, 9, 10, 9, 30, 0, 0, time.UTC)
	res := ComputeAvailability(AvailabilityQuery{
		Screen:  model.Screen{ID: 1, SecurityBufferMinutes: 30},
		Periods: []model.Period{period},
		Slots:   []model.Slot{slot},
		Start:   day,
		End:     day,
		Now:     now,
	})
	assert.Equal(t, 12*3600, res.TotalAvailableSeconds)

	// A buffer swallowing the whole period zeroes it, not the range.
	lateNow := time.Date(2026, 9, 10, 21, 50, 0, 0, time.UTC)
	res = ComputeAvailability(AvailabilityQuery{
		Screen:  model.Screen{ID: 1, SecurityBufferMinutes: 30},
		Periods: []model.Period{period},
		Slots:   []model.Slot{slot},
		Start:   day,
		End:     day,
		Now:     lateNow,
	})
	assert.Zero(t, res.TotalAvailableSeconds)
}

// Overcommitted periods clamp to zero instead of going negative or erroring.
func TestAvailabilityOvercommissionClampsToZero(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, Name: "Noon", StartHour: 12, EndHour: 14}
	slot := model.Slot{ID: 1, DurationSeconds: 30, IsActive: true}
	booking := model.Booking{
		ID: 1, TimePeriodID: intPtr(1), DurationSeconds: 30, NumPlays: 100000,
		StartDate: datePtr(day), EndDate: datePtr(day),
		Status: model.BookingStatusActive,
	}

	res := ComputeAvailability(AvailabilityQuery{
		Screen:   model.Screen{ID: 1},
		Periods:  []model.Period{period},
		Slots:    []model.Slot{slot},
		Bookings: []model.Booking{booking},
		Start:    day,
		End:      day,
		Now:      day.Add(-24 * time.Hour),
	})
	assert.Zero(t, res.TotalAvailableSeconds)
	assert.Zero(t, res.AvailablePlays)
}

// Whatever the booking load, availability never goes negative and never
// exceeds the raw period capacity; plays are always seconds/duration.
func TestAvailabilityBoundsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, Name: "Day", StartHour: 8, EndHour: 20, PriceMultiplier: 1}
	slot := model.Slot{ID: 1, DurationSeconds: 10, IsActive: true}

	properties.Property("availability stays within [0, capacity]", prop.ForAll(
		func(numPlays, rangeDays int) bool {
			end := start.AddDate(0, 0, rangeDays-1)
			booking := model.Booking{
				ID: 1, SlotID: 1, TimePeriodID: intPtr(1),
				DurationSeconds: 10, NumPlays: numPlays,
				StartDate: datePtr(start), EndDate: datePtr(end),
				Status: model.BookingStatusActive,
			}
			res := ComputeAvailability(AvailabilityQuery{
				Screen:   model.Screen{ID: 1, IsActive: true},
				Periods:  []model.Period{period},
				Slots:    []model.Slot{slot},
				Bookings: []model.Booking{booking},
				Start:    start,
				End:      end,
				Now:      start.Add(-24 * time.Hour),
			})
			capacity := period.DurationSeconds() * rangeDays
			if res.TotalAvailableSeconds < 0 || res.TotalAvailableSeconds > capacity {
				return false
			}
			for _, d := range res.Days {
				if d.AvailableSeconds < 0 || d.AvailableSeconds > period.DurationSeconds() {
					return false
				}
				if d.AvailablePlays != d.AvailableSeconds/slot.DurationSeconds {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 2000000),
		gen.IntRange(1, 60),
	))

	properties.TestingRun(t)
}

// Selling past capacity is allowed: the quote's allocation still carries
// every requested play while remaining availability reports zero.
func TestOvercommittedRangeStillAllocatesAllPlays(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	period := model.Period{ID: 1, Name: "Noon", StartHour: 12, EndHour: 14}
	slot := model.Slot{ID: 1, DurationSeconds: 30, IsActive: true}
	booking := model.Booking{
		ID: 1, TimePeriodID: intPtr(1), DurationSeconds: 30, NumPlays: 100000,
		StartDate: datePtr(day), EndDate: datePtr(day),
		Status: model.BookingStatusActive,
	}

	res := ComputeAvailability(AvailabilityQuery{
		Screen:   model.Screen{ID: 1},
		Periods:  []model.Period{period},
		Slots:    []model.Slot{slot},
		Bookings: []model.Booking{booking},
		Start:    day,
		End:      day,
		Now:      day.Add(-24 * time.Hour),
	})
	assert.Zero(t, res.AvailablePlays)

	alloc := DistributePlaysOverRange(500, day, day)
	require.Len(t, alloc, 1)
	assert.Equal(t, 500, alloc[0].Plays)
}

package schedule

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDistributePlaysExample(t *testing.T) {
	got := DistributePlays(23, 5)
	want := []int{5, 5, 5, 4, 4}
	if len(got) != len(want) {
		t.Fatalf("DistributePlays(23, 5) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DistributePlays(23, 5) = %v, want %v", got, want)
		}
	}
}

func TestDistributePlaysSingleDay(t *testing.T) {
	got := DistributePlays(100, 1)
	if len(got) != 1 || got[0] != 100 {
		t.Fatalf("DistributePlays(100, 1) = %v, want [100]", got)
	}
}

func TestDistributePlaysProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("distribution sums to total plays", prop.ForAll(
		func(plays, days int) bool {
			out := DistributePlays(plays, days)
			sum := 0
			for _, v := range out {
				sum += v
			}
			return sum == plays
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 365),
	))

	properties.Property("no two days differ by more than one play", prop.ForAll(
		func(plays, days int) bool {
			out := DistributePlays(plays, days)
			min, max := out[0], out[0]
			for _, v := range out {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			return max-min <= 1
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 365),
	))

	properties.Property("remainder days come first", prop.ForAll(
		func(plays, days int) bool {
			out := DistributePlays(plays, days)
			for i := 1; i < len(out); i++ {
				if out[i] > out[i-1] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 365),
	))

	properties.TestingRun(t)
}

func TestDistributePlaysOverRange(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	out := DistributePlaysOverRange(23, start, end)
	if len(out) != 5 {
		t.Fatalf("expected 5 allocations, got %d", len(out))
	}
	if !out[0].Date.Equal(start) {
		t.Errorf("first allocation date = %v, want %v", out[0].Date, start)
	}
	if !out[4].Date.Equal(end) {
		t.Errorf("last allocation date = %v, want %v", out[4].Date, end)
	}
	total := 0
	for _, a := range out {
		total += a.Plays
	}
	if total != 23 {
		t.Errorf("allocations sum to %d, want 23", total)
	}
}

package utils

import (
	"testing"
	"time"
)

func TestTodayAndYesterday(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		wantToday     string
		wantYesterday string
	}{
		{
			name:          "mid month",
			now:           time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
			wantToday:     "2026-10-19",
			wantYesterday: "2026-10-18",
		},
		{
			name:          "first of month",
			now:           time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC),
			wantToday:     "2026-03-01",
			wantYesterday: "2026-02-28",
		},
		{
			name:          "new year",
			now:           time.Date(2027, 1, 1, 23, 59, 59, 0, time.UTC),
			wantToday:     "2027-01-01",
			wantYesterday: "2026-12-31",
		},
		{
			name:          "leap day",
			now:           time.Date(2028, 3, 1, 12, 0, 0, 0, time.UTC),
			wantToday:     "2028-03-01",
			wantYesterday: "2028-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &FixedClock{Time: tt.now}
			if got := Today(clock); got != tt.wantToday {
				t.Errorf("Today() = %v, want %v", got, tt.wantToday)
			}
			today, yesterday := Days(clock)
			if today != tt.wantToday || yesterday != tt.wantYesterday {
				t.Errorf("Days() = %v, %v, want %v, %v", today, yesterday, tt.wantToday, tt.wantYesterday)
			}
		})
	}
}

// tickingClock moves forward by step on every read
type tickingClock struct {
	next time.Time
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

func TestDaysReadsClockOnce(t *testing.T) {
	clock := &tickingClock{
		next: time.Date(2026, 10, 19, 23, 59, 59, 0, time.UTC),
		step: time.Second,
	}

	today, yesterday := Days(clock)
	if today != "2026-10-19" || yesterday != "2026-10-18" {
		t.Errorf("Days() across midnight = %v, %v, want 2026-10-19, 2026-10-18", today, yesterday)
	}
}

func TestSystemClockUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*60*60)
	clock := NewSystemClock(loc)

	if got := clock.Now().Location(); got != loc {
		t.Errorf("Now().Location() = %v, want %v", got, loc)
	}
}

func TestFixedClockAddDays(t *testing.T) {
	clock := &FixedClock{Time: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	clock.AddDays(3)

	if got := Today(clock); got != "2026-10-22" {
		t.Errorf("Today() after AddDays(3) = %v, want 2026-10-22", got)
	}
}

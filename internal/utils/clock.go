package utils

import "time"

// DateLayout is the calendar-day format stored in progress records.
const DateLayout = "2006-01-02"

// Clock supplies the current time. Streak rules read "today" through it so
// they can be exercised without touching the system clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a wall clock for the given location (nil means local time)
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// FixedClock always reports the same instant. Set Time to move it.
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}

// AddDays moves the clock by whole calendar days.
func (c *FixedClock) AddDays(days int) {
	c.Time = c.Time.AddDate(0, 0, days)
}

// Today returns the calendar day c currently reports.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// Days returns today and the day before from a single read of c, so both
// come from the same side of midnight.
func Days(c Clock) (today, yesterday string) {
	now := c.Now()
	return now.Format(DateLayout), now.AddDate(0, 0, -1).Format(DateLayout)
}

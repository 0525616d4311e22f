package app

import "time"

// Calendar decides which calendar date "today" is for quiz purposes.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar builds a calendar in loc. A nil now uses time.Now.
func NewCalendar(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

// Now returns the current instant.
func (c Calendar) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Today returns the current date as YYYY-MM-DD in the calendar's location.
func (c Calendar) Today() string {
	loc := c.loc
	if loc == nil {
		loc = time.UTC
	}
	return c.Now().In(loc).Format(DateLayout)
}

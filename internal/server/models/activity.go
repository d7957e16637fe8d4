package models

import (
	"fmt"
	"time"
)

// RepeatFrequency describes how an activity recurs.
type RepeatFrequency string

const (
	RepeatNone    RepeatFrequency = "none"
	RepeatDaily   RepeatFrequency = "daily"
	RepeatWeekly  RepeatFrequency = "weekly"
	RepeatMonthly RepeatFrequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f RepeatFrequency) Valid() bool {
	switch f {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

// Activity is a user reminder. Date holds the calendar day of the next (or
// only) occurrence; Time is the wall-clock "HH:mm" part, interpreted in the
// server's local timezone. EmailReminderSent means the current occurrence's
// notification has been dispatched; for repeating activities the scheduler
// resets it when it advances Date.
type Activity struct {
	ID                string
	OwnerID           string
	Title             string
	Description       string
	Date              time.Time
	Time              string
	RepeatFrequency   RepeatFrequency
	EmailReminderSent bool
	CreatedAt         time.Time
}

// ParseClock validates and splits an "HH:mm" wall-clock string
// (00–23 hours, 00–59 minutes).
func ParseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:mm", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("invalid time %q: want HH:mm", s)
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: hour 00-23, minute 00-59", s)
	}
	return hour, minute, nil
}

// DueAt combines the activity's calendar date with its HH:mm clock into the
// due instant, in loc. Date is a civil date: the driver scans the DATE
// column as midnight UTC, so its year/month/day are taken as-is and never
// shifted into loc first.
func (a *Activity) DueAt(loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseClock(a.Time)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := a.Date.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

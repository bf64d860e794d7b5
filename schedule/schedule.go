// Package schedule computes due instants for template scheduling policies.
//
// Everything here is a pure function of (policy, now); nothing reads a wall
// clock. Callers decide what "now" means (usually organization-local time).
package schedule

import (
	"time"

	"taskforge/types"
)

// Policy is the scheduling rule of a template, lifted out of its row form.
// Date is only set for the absolute-date policy kinds.
type Policy struct {
	Type types.ScheduleType
	Date *time.Time
}

// FromTemplate extracts the active policy of a template.
func FromTemplate(t types.Template) Policy {
	p := Policy{Type: t.ScheduleType}

	switch t.ScheduleType {
	case types.ScheduleTypeDeadlineDate:
		if t.DeadlineDate.Valid {
			d := t.DeadlineDate.Time
			p.Date = &d
		}
	case types.ScheduleTypeSpecificDate:
		if t.SpecificDate.Valid {
			d := t.SpecificDate.Time
			p.Date = &d
		}
	}

	return p
}

// FromPendingAssignment extracts the policy columns joined onto a sweep row.
func FromPendingAssignment(a types.PendingAssignment) Policy {
	p := Policy{Type: a.ScheduleType}

	switch a.ScheduleType {
	case types.ScheduleTypeDeadlineDate:
		if a.DeadlineDate.Valid {
			d := a.DeadlineDate.Time
			p.Date = &d
		}
	case types.ScheduleTypeSpecificDate:
		if a.SpecificDate.Valid {
			d := a.SpecificDate.Time
			p.Date = &d
		}
	}

	return p
}

// ResolveDueInstant returns the due instant for a policy relative to now.
//
// Absolute-date policies resolve to the stored date at end-of-day. daily is
// the end of now's day, weekly the end of the current ISO week (Sunday) and
// monthly the last calendar day of now's month, all at end-of-day in now's
// location. ok is false when the policy yields no due instant; such work is
// never eligible for missed status.
func ResolveDueInstant(p Policy, now time.Time) (due time.Time, ok bool) {
	switch p.Type {
	case types.ScheduleTypeDeadlineDate, types.ScheduleTypeSpecificDate:
		if p.Date == nil {
			return time.Time{}, false
		}
		return endOfDay(p.Date.Year(), p.Date.Month(), p.Date.Day(), now.Location()), true
	case types.ScheduleTypeDaily:
		return endOfDay(now.Year(), now.Month(), now.Day(), now.Location()), true
	case types.ScheduleTypeWeekly:
		// Weeks close on Sunday. A Sunday "now" is due that same day.
		days := (7 - int(now.Weekday())) % 7
		sunday := now.AddDate(0, 0, days)
		return endOfDay(sunday.Year(), sunday.Month(), sunday.Day(), now.Location()), true
	case types.ScheduleTypeMonthly:
		// Day 0 of the next month is the last day of this one.
		last := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return endOfDay(last.Year(), last.Month(), last.Day(), now.Location()), true
	default:
		return time.Time{}, false
	}
}

func endOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), loc)
}

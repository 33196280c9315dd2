// Package timezone turns company timezones and calendar dates into instants.
package timezone

import (
	"math"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const DefaultTimezone = "America/Sao_Paulo"

const DateLayout = "2006-01-02"

var (
	ErrInvalidTimezone = httperr.ErrBusiness("invalid_timezone")
	ErrInvalidDate     = httperr.ErrBusiness("invalid_date")
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location loads tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// StartOfDay is midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns [midnight, next midnight) of t's day in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// DaysBetween counts calendar days from one midnight to another in the
// same zone. Rounding absorbs DST shifts.
func DaysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// ParseDate reads a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// InclusiveRange converts optional inclusive calendar dates into a half-open
// [from, to+1day) instant range. Empty strings leave that side open.
func InclusiveRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		d, err := ParseDate(from, loc)
		if err != nil {
			return nil, nil, err
		}
		start = &d
	}
	if to != "" {
		d, err := ParseDate(to, loc)
		if err != nil {
			return nil, nil, err
		}
		next := d.AddDate(0, 0, 1)
		end = &next
	}
	return start, end, nil
}

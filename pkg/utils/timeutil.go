package utils

import (
	"time"
)

// ET is the US Eastern time zone EDGAR operates in.
var ET *time.Location

func init() {
	var err error
	ET, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: fixed EST offset if the tz database is not available
		ET = time.FixedZone("EST", -5*60*60)
	}
}

const dateLayout = "2006-01-02"

// NowET returns the current time in Eastern time.
func NowET() time.Time {
	return time.Now().In(ET)
}

// EdgarOpenTime returns when EDGAR starts accepting filings (6:00 AM ET).
func EdgarOpenTime(date time.Time) time.Time {
	d := date.In(ET)
	return time.Date(d.Year(), d.Month(), d.Day(), 6, 0, 0, 0, ET)
}

// EdgarCloseTime returns when EDGAR stops accepting filings (10:00 PM ET).
func EdgarCloseTime(date time.Time) time.Time {
	d := date.In(ET)
	return time.Date(d.Year(), d.Month(), d.Day(), 22, 0, 0, 0, ET)
}

// EdgarCutoffTime returns the 5:30 PM ET cutoff after which a filing is
// dated the next business day.
func EdgarCutoffTime(date time.Time) time.Time {
	d := date.In(ET)
	return time.Date(d.Year(), d.Month(), d.Day(), 17, 30, 0, 0, ET)
}

// IsEdgarOpenAt checks whether EDGAR accepts submissions at t.
func IsEdgarOpenAt(t time.Time) bool {
	t = t.In(ET)
	if !IsBusinessDay(t) {
		return false
	}
	return !t.Before(EdgarOpenTime(t)) && t.Before(EdgarCloseTime(t))
}

// IsBusinessDay checks if the date is a weekday and not a federal holiday.
func IsBusinessDay(t time.Time) bool {
	t = t.In(ET)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !IsFederalHoliday(t)
}

// NextBusinessDay returns the first business day after from.
func NextBusinessDay(from time.Time) time.Time {
	next := from.In(ET).AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FilingDateFor returns the official filing date for a submission accepted
// at t: same day before the cutoff, otherwise the next business day.
func FilingDateFor(t time.Time) string {
	t = t.In(ET)
	if IsBusinessDay(t) && t.Before(EdgarCutoffTime(t)) {
		return t.Format(dateLayout)
	}
	return NextBusinessDay(t).Format(dateLayout)
}

// IsFederalHoliday checks the date against the observed federal holidays.
// This list should be updated annually.
func IsFederalHoliday(t time.Time) bool {
	_, ok := federalHolidays2026[t.In(ET).Format(dateLayout)]
	return ok
}

// Observed federal holidays for 2026 (EDGAR is closed).
var federalHolidays2026 = map[string]string{
	"2026-01-01": "New Year's Day",
	"2026-01-19": "Martin Luther King Jr. Day",
	"2026-02-16": "Washington's Birthday",
	"2026-05-25": "Memorial Day",
	"2026-06-19": "Juneteenth",
	"2026-07-03": "Independence Day (observed)",
	"2026-09-07": "Labor Day",
	"2026-10-12": "Columbus Day",
	"2026-11-11": "Veterans Day",
	"2026-11-26": "Thanksgiving Day",
	"2026-12-25": "Christmas Day",
}

// ParseDate parses a "2006-01-02" date in Eastern time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, ET)
}

// FormatDateET formats t as "2006-01-02" in Eastern time.
func FormatDateET(t time.Time) string {
	return t.In(ET).Format(dateLayout)
}

// FormatDateTimeET formats t as "2006-01-02 15:04:05 ET".
func FormatDateTimeET(t time.Time) string {
	return t.In(ET).Format("2006-01-02 15:04:05") + " ET"
}

// EdgarStatus returns a short description of EDGAR's filing window.
func EdgarStatus() string {
	now := NowET()
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}
	if name, ok := federalHolidays2026[now.Format(dateLayout)]; ok {
		return "CLOSED (" + name + ")"
	}
	switch {
	case now.Before(EdgarOpenTime(now)):
		return "CLOSED (opens 06:00 ET)"
	case now.Before(EdgarCutoffTime(now)):
		return "OPEN"
	case now.Before(EdgarCloseTime(now)):
		return "OPEN (filings dated next business day)"
	default:
		return "CLOSED"
	}
}

package fintrack

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayFirstFormat is the format used to persist dates in all stored records.
const DayFirstFormat = "02-01-2006"

// YearFirstFormat is the transient ISO-8601 form used by date pickers.
const YearFirstFormat = "2006-01-02"

// Date represents a date with no lower than day granularity.
// The zero Date is the invalid-date sentinel.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
// Out-of-range components roll over the calendar (day 31 of April becomes May 1).
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the invalid-date sentinel.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// AddDays returns a new Date with the given number of days added.
func (d Date) AddDays(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// SameMonth reports whether d and x fall in the same (year, month).
func (d Date) SameMonth(x Date) bool { return d.y == x.y && d.m == x.m }

// Unix returns the epoch seconds of the day at midnight UTC.
func (d Date) Unix() int64 { return d.time().Unix() }

// DateOfUnix returns the calendar date of a unix timestamp, in UTC.
func DateOfUnix(sec int64) Date { return NewDate(time.Unix(sec, 0).UTC().Date()) }

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayFirst formats the date in the persisted DD-MM-YYYY form.
func (d Date) DayFirst() string { return d.time().Format(DayFirstFormat) }

// YearFirst formats the date in the transient YYYY-MM-DD form.
func (d Date) YearFirst() string { return d.time().Format(YearFirstFormat) }

// String formats the date in its persisted form.
func (d Date) String() string { return d.DayFirst() }

// ParseFlexible parses either textual encoding into a Date. The encoding is
// detected by the width of the first hyphen-separated token: 2 digits means
// day-first, 4 digits means year-first (an optional time suffix is ignored).
// Anything else goes through a generic parse. On total failure it returns the
// zero Date sentinel; it never panics.
func ParseFlexible(str string) Date {
	if i := strings.IndexAny(str, " T"); i > 0 {
		str = str[:i] // drop a time suffix such as "2024-05-01 10:04"
	}
	// The first hyphen index is also the width of the first token.
	switch strings.IndexByte(str, '-') {
	case 2:
		if t, err := time.Parse(DayFirstFormat, str); err == nil {
			return NewDate(t.Date())
		}
	case 4:
		if t, err := time.Parse(YearFirstFormat, str); err == nil {
			return NewDate(t.Date())
		}
	}
	// Generic fallback for anything that slipped through.
	for _, layout := range []string{time.RFC3339, "2006-1-2", "2-1-2006"} {
		if t, err := time.Parse(layout, str); err == nil {
			return NewDate(t.Date())
		}
	}
	return Date{}
}

// ParseDate is the strict variant used by CLI flags: it rejects what
// ParseFlexible would only sentinel.
func ParseDate(str string) (Date, error) {
	d := ParseFlexible(str)
	if d.IsZero() {
		return Date{}, fmt.Errorf("invalid date %q, want %q or %q", str, DayFirstFormat, YearFirstFormat)
	}
	return d, nil
}

// MustParseDate is like ParseDate but panics on error. For tests and constants.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON persists the date in the day-first form.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.DayFirst()
	return json.Marshal(&str)
}

// UnmarshalJSON accepts either encoding, like ParseFlexible.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed := ParseFlexible(str)
	if parsed.IsZero() {
		return fmt.Errorf("invalid date %q", str)
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

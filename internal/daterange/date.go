// Package daterange resolves period tokens and explicit date strings into
// inclusive calendar-date ranges on a fixed UTC-03:00 civil calendar.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the only accepted wire format for calendar dates.
const Layout = "2006-01-02"

// Location is the civil calendar every bare date is anchored to. A bare
// date parsed as UTC midnight renders as the previous day at -03:00, so all
// parsing and arithmetic happen here instead.
var Location = time.FixedZone("UTC-03:00", -3*60*60)

// ErrInvalidDate reports a string that is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar day with no time component, held as midnight in Location.
type Date struct {
	t time.Time
}

// Parse anchors a bare YYYY-MM-DD string to T00:00:00-03:00.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(Layout, s, Location)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// New builds a date from its parts. Out-of-range parts normalize the way
// time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, Location)}
}

// FromTime keeps the year, month and day of t as seen in t's own location.
// Database DATE columns arrive as UTC midnight, so their wall date is used
// verbatim rather than converted.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today is the current civil date in Location.
func Today(now time.Time) Date {
	return FromTime(now.In(Location))
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight of d in Location.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// AddMonths uses calendar month arithmetic with native overflow: Jan 31 plus
// one month is the day after Feb 28/29.
func (d Date) AddMonths(n int) Date {
	y, m, day := d.t.Date()
	return New(y, m+time.Month(n), day)
}

func (d Date) AddDays(n int) Date {
	y, m, day := d.t.Date()
	return New(y, m, day+n)
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

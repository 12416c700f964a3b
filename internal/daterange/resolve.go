package daterange

import (
	"net/url"
	"strings"
	"time"
)

// Period is a named shorthand for a date range.
type Period string

const (
	PeriodToday Period = "hoje"
	PeriodWeek  Period = "semana"
	PeriodMonth Period = "mes"
	PeriodYear  Period = "ano"
)

// Query carries the raw filter parameters of a list or report request.
type Query struct {
	Period Period
	Start  string
	End    string
}

// QueryFromValues reads periodo, data_inicio and data_fim.
func QueryFromValues(v url.Values) Query {
	return Query{
		Period: Period(strings.ToLower(strings.TrimSpace(v.Get("periodo")))),
		Start:  strings.TrimSpace(v.Get("data_inicio")),
		End:    strings.TrimSpace(v.Get("data_fim")),
	}
}

// HasExplicit reports whether either explicit boundary was supplied.
func (q Query) HasExplicit() bool {
	return q.Start != "" || q.End != ""
}

// Range is an inclusive calendar-date interval. A nil side is open-ended.
type Range struct {
	From *Date
	To   *Date
}

// Unbounded matches every date.
var Unbounded = Range{}

// Resolve turns q into a concrete range. Explicit dates win over the period
// token; with neither, the current month is used.
func Resolve(q Query, now time.Time) (Range, error) {
	if q.HasExplicit() {
		return Explicit(q)
	}
	return ForPeriod(q.Period, now), nil
}

// Explicit honours only data_inicio/data_fim and leaves a missing side open.
func Explicit(q Query) (Range, error) {
	var r Range
	if q.Start != "" {
		d, err := Parse(q.Start)
		if err != nil {
			return Range{}, err
		}
		r.From = &d
	}
	if q.End != "" {
		d, err := Parse(q.End)
		if err != nil {
			return Range{}, err
		}
		r.To = &d
	}
	return r, nil
}

// ForPeriod resolves a period token relative to now. Unknown or empty
// tokens fall back to the current month.
func ForPeriod(p Period, now time.Time) Range {
	today := Today(now)
	y, m, _ := today.Time().Date()

	var from, to Date
	switch p {
	case PeriodToday:
		from, to = today, today
	case PeriodWeek:
		from, to = today.AddDays(-7), today
	case PeriodYear:
		from, to = New(y, time.January, 1), New(y, time.December, 31)
	default:
		from = New(y, m, 1)
		to = New(y, m+1, 0)
	}
	return Range{From: &from, To: &to}
}

// Contains reports whether d falls inside the inclusive range.
func (r Range) Contains(d Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

// Bounds renders both sides as YYYY-MM-DD, empty when open.
func (r Range) Bounds() (from, to string) {
	if r.From != nil {
		from = r.From.String()
	}
	if r.To != nil {
		to = r.To.String()
	}
	return from, to
}

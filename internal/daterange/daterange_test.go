package daterange

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchorsToFixedOffset(t *testing.T) {
	d, err := Parse("2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", d.String())
	_, offset := d.Time().Zone()
	assert.Equal(t, -3*60*60, offset)

	// rendering in UTC or -03:00 must not move the day
	assert.Equal(t, "2024-03-15", d.Time().UTC().Format(Layout))
	assert.Equal(t, "2024-03-15", d.Time().In(Location).Format(Layout))
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "15/03/2024", "2024-02-30", "2024-3-5", "hoje"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", in)
	}
}

func TestFromTimeKeepsWallDate(t *testing.T) {
	// DATE columns scan as UTC midnight
	utc := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15", FromTime(utc).String())
}

func TestTodayUsesCivilCalendar(t *testing.T) {
	// 01:30 UTC on the 16th is still the 15th at -03:00
	now := time.Date(2024, time.March, 16, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15", Today(now).String())
}

func TestAddMonthsOverflow(t *testing.T) {
	jan31 := MustParse("2024-01-31")
	assert.Equal(t, "2024-01-31", jan31.AddMonths(0).String())
	assert.Equal(t, "2024-03-02", jan31.AddMonths(1).String())
	assert.Equal(t, "2024-03-31", jan31.AddMonths(2).String())
	assert.Equal(t, "2025-01-31", jan31.AddMonths(12).String())
}

func TestJSONRoundTrip(t *testing.T) {
	var payload struct {
		When Date  `json:"when"`
		Paid *Date `json:"paid"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2024-03-15","paid":null}`), &payload))
	assert.Equal(t, "2024-03-15", payload.When.String())
	assert.Nil(t, payload.Paid)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2024-03-15","paid":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"when":"2024-13-01"}`), &payload))
}

func TestForPeriodIsOrdered(t *testing.T) {
	now := time.Date(2024, time.July, 10, 15, 0, 0, 0, Location)
	for _, p := range []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, "", "bogus"} {
		r := ForPeriod(p, now)
		require.NotNil(t, r.From)
		require.NotNil(t, r.To)
		assert.False(t, r.From.After(*r.To), "period %q", p)
	}
}

func TestForPeriodBounds(t *testing.T) {
	now := time.Date(2024, time.July, 10, 15, 0, 0, 0, Location)

	tests := []struct {
		period   Period
		from, to string
	}{
		{PeriodToday, "2024-07-10", "2024-07-10"},
		{PeriodWeek, "2024-07-03", "2024-07-10"},
		{PeriodMonth, "2024-07-01", "2024-07-31"},
		{PeriodYear, "2024-01-01", "2024-12-31"},
		{"", "2024-07-01", "2024-07-31"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			from, to := ForPeriod(tt.period, now).Bounds()
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestMonthBracketsEveryMonthLength(t *testing.T) {
	tests := []struct {
		now     time.Time
		lastDay string
	}{
		{time.Date(2023, time.February, 14, 12, 0, 0, 0, Location), "2023-02-28"},
		{time.Date(2024, time.February, 29, 23, 0, 0, 0, Location), "2024-02-29"},
		{time.Date(2024, time.April, 30, 8, 0, 0, 0, Location), "2024-04-30"},
		{time.Date(2024, time.December, 31, 8, 0, 0, 0, Location), "2024-12-31"},
	}
	for _, tt := range tests {
		from, to := ForPeriod(PeriodMonth, tt.now).Bounds()
		assert.Equal(t, tt.now.Format("2006-01")+"-01", from)
		assert.Equal(t, tt.lastDay, to)
	}
}

func TestResolvePrefersExplicitDates(t *testing.T) {
	now := time.Date(2024, time.July, 10, 15, 0, 0, 0, Location)

	r, err := Resolve(Query{Period: PeriodYear, Start: "2024-02-01", End: "2024-02-10"}, now)
	require.NoError(t, err)
	from, to := r.Bounds()
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-10", to)

	r, err = Resolve(Query{Period: PeriodMonth, Start: "2024-02-01"}, now)
	require.NoError(t, err)
	assert.NotNil(t, r.From)
	assert.Nil(t, r.To, "single explicit side stays open-ended")

	r, err = Resolve(Query{End: "2024-02-10"}, now)
	require.NoError(t, err)
	assert.Nil(t, r.From)
	assert.Equal(t, "2024-02-10", r.To.String())

	_, err = Resolve(Query{Start: "yesterday"}, now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExplicitWithoutDatesIsUnbounded(t *testing.T) {
	r, err := Explicit(Query{Period: PeriodMonth})
	require.NoError(t, err)
	assert.Equal(t, Unbounded, r)
	assert.True(t, r.Contains(MustParse("1999-01-01")))
}

func TestRangeContainsIsInclusive(t *testing.T) {
	from, to := MustParse("2024-03-01"), MustParse("2024-03-31")
	r := Range{From: &from, To: &to}

	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(MustParse("2024-02-29")))
	assert.False(t, r.Contains(MustParse("2024-04-01")))
}

func TestQueryFromValues(t *testing.T) {
	q := QueryFromValues(url.Values{
		"periodo":     {" ANO "},
		"data_inicio": {"2024-01-01"},
	})
	assert.Equal(t, PeriodYear, q.Period)
	assert.Equal(t, "2024-01-01", q.Start)
	assert.Empty(t, q.End)
	assert.True(t, q.HasExplicit())
}

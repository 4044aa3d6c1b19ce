package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"Monday":  Monday,
		"monday":  Monday,
		"Mon":     Monday,
		"Måndag":  Monday,
		"söndag":  Sunday,
		" Friday": Friday,
		"Lör":     Saturday,
		"0":       Sunday,
		"1":       Monday,
		"6":       Saturday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("Funday")
	assert.Error(t, err)
	_, err = ParseWeekday("7")
	assert.Error(t, err)
}

func TestWeekdayOf_MondayFirst(t *testing.T) {
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))
	assert.Equal(t, Monday, WeekdayOf(time.Monday))
	assert.Equal(t, Saturday, WeekdayOf(time.Saturday))
	assert.Equal(t, time.Sunday, Sunday.Std())
	assert.Equal(t, 0, Monday.Index())
	assert.Equal(t, 6, Sunday.Index())
}

func TestDate_Weekday(t *testing.T) {
	assert.Equal(t, Monday, NewDate(2026, time.January, 5).Weekday())
	assert.Equal(t, Tuesday, NewDate(2026, time.January, 6).Weekday())
	assert.Equal(t, Sunday, NewDate(2026, time.January, 11).Weekday())
}

func TestWeekStart(t *testing.T) {
	monday := NewDate(2026, time.January, 5)
	for i := 0; i < 7; i++ {
		assert.Equal(t, monday, WeekStart(monday.AddDays(i)), "day offset %d", i)
	}
	// Sunday maps back six days, not forward.
	assert.Equal(t, monday, WeekStart(NewDate(2026, time.January, 11)))
	assert.Equal(t, monday.AddDays(7), WeekStart(NewDate(2026, time.January, 12)))
}

func TestWeekOf_CrossesMonth(t *testing.T) {
	week := WeekOf(NewDate(2026, time.March, 1))
	assert.Equal(t, NewDate(2026, time.February, 23), week[0])
	assert.Equal(t, NewDate(2026, time.March, 1), week[6])
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.February, 10), d)

	d, err = ParseDate("2026-02-10T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.February, 10), d)

	_, err = ParseDate("10/02/2026")
	assert.Error(t, err)
}

func TestDateOf_IgnoresZoneArtifacts(t *testing.T) {
	stockholm := time.FixedZone("CET", 3600)

	// 23:30 UTC is already the next day in Stockholm.
	instant := time.Date(2026, time.February, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2026, time.February, 10), DateOf(instant.In(stockholm)))
	assert.Equal(t, NewDate(2026, time.February, 9), DateOf(instant))
}

func TestDate_CompareAndDays(t *testing.T) {
	a := NewDate(2026, time.December, 31)
	b := a.AddDays(1)
	assert.Equal(t, NewDate(2027, time.January, 1), b)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, a.DaysUntil(b))
	assert.Equal(t, -1, b.DaysUntil(a))
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2026, time.January, 5)
	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-05"`, string(b))

	var back Date
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, d, back)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("15:30:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 15, Minute: 30}, tod)
	assert.Equal(t, "15:30", tod.String())
	assert.Equal(t, "15:30:00", tod.Wire())

	tod, err = ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9*60+5, tod.Minutes())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	assert.True(t, TimeOfDay{Hour: 9}.Before(TimeOfDay{Hour: 9, Minute: 1}))
}

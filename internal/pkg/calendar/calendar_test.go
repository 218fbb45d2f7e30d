package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.February}, m)
	assert.Equal(t, "2024-02", m.String())
	assert.Equal(t, 29, m.Days())

	for _, bad := range []string{"", "2024-13", "2024-2", "24-02", "2024/02"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestMonth_AddMonths(t *testing.T) {
	m := Month{Year: 2024, Month: time.January}
	assert.Equal(t, Month{Year: 2023, Month: time.November}, m.AddMonths(-2))
	assert.Equal(t, Month{Year: 2024, Month: time.March}, m.AddMonths(2))
	assert.True(t, m.AddMonths(-1).Before(m))
	assert.False(t, m.Before(m))
}

func TestMonth_ElapsedDays(t *testing.T) {
	june := Month{Year: 2024, Month: time.June}
	today := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 12, june.ElapsedDays(today))
	assert.Equal(t, 31, june.AddMonths(-1).ElapsedDays(today))
	assert.Equal(t, 0, june.AddMonths(1).ElapsedDays(today))
}

func TestMonth_Keys(t *testing.T) {
	june := Month{Year: 2024, Month: time.June}

	assert.Equal(t, "07", DayKey(7))
	assert.Equal(t, "2024-06-07", june.DateKey(7))
	assert.True(t, june.Contains("2024-06-30"))
	assert.False(t, june.Contains("2024-07-01"))

	day, err := june.ParseDayKey("30")
	require.NoError(t, err)
	assert.Equal(t, 30, day)

	for _, bad := range []string{"31", "00", "1", "ab", "001"} {
		_, err := june.ParseDayKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestAt(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)

	got, err := At("2024-06-03", "09:15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 3, 9, 15, 0, 0, loc), got)

	_, err = At("2024-06-03", "9:15", loc)
	assert.ErrorIs(t, err, ErrInvalidClock)

	_, err = At("03-06-2024", "09:15", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsWeekend(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsWeekend(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)))
}

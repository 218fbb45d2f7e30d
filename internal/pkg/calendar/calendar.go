// Package calendar holds the month, day and date key formats shared by the
// schedule, attendance and KPI packages. The string forms sort lexicographically
// in calendar order and are used as storage and lookup keys.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock = errors.New("time must be in HH:MM format")
)

// Month is a calendar month independent of any time zone.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths returns the month n months away; n may be negative.
func (m Month) AddMonths(n int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Date returns midnight of the given day of the month in loc.
func (m Month) Date(day int, loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, loc)
}

// DateKey returns the YYYY-MM-DD key of the given day of the month.
func (m Month) DateKey(day int) string {
	return m.String() + "-" + DayKey(day)
}

// Contains reports whether a YYYY-MM-DD key falls inside the month.
func (m Month) Contains(date string) bool {
	return strings.HasPrefix(date, m.String()+"-")
}

// DayKey returns the zero-padded two digit day of month used by schedules.
func DayKey(day int) string {
	return fmt.Sprintf("%02d", day)
}

// ParseDayKey parses a two digit day key and checks it against the month length.
func (m Month) ParseDayKey(key string) (int, error) {
	if len(key) != 2 {
		return 0, fmt.Errorf("invalid day key %q", key)
	}
	day, err := strconv.Atoi(key)
	if err != nil || day < 1 || day > m.Days() {
		return 0, fmt.Errorf("invalid day key %q for %s", key, m)
	}
	return day, nil
}

// ElapsedDays returns how many days of m have started by today: all of them
// for past months, today's day of month for the current month and none for
// future months.
func (m Month) ElapsedDays(today time.Time) int {
	current := MonthOf(today)
	switch {
	case m == current:
		return today.Day()
	case m.Before(current):
		return m.Days()
	default:
		return 0
	}
}

// ParseClock parses an "HH:MM" wall clock time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil || len(s) != len(ClockLayout) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour(), t.Minute(), nil
}

// At combines a YYYY-MM-DD date with an "HH:MM" clock in loc.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	h, min, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, min, 0, 0, loc), nil
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

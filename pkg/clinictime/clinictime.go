// Package clinictime converts absolute instants into the clinic's civil calendar.
//
// Shift rows store a civil date and civil times of day with no zone. Bookings store
// absolute instants. Every comparison between the two goes through a Zone so that the
// result never depends on the server's local timezone, and times of day are compared
// as integers so "09:00" and "09:00:00" are the same value.
package clinictime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/jinzhu/now"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"

	secondsPerDay = 24 * 60 * 60
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day, use HH:MM or HH:MM:SS")
	ErrInvalidDate      = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidInstant   = errors.New("invalid instant, use ISO-8601")
)

// TimeOfDay is a civil time of day expressed as seconds since midnight.
// Values past 24:00:00 describe the following civil day.
type TimeOfDay int

// ParseTimeOfDay accepts HH:MM and HH:MM:SS. 24:00 and 24:00:00 are accepted as end-of-day.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidTimeOfDay
	}

	values := make([]int, 3)
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return 0, ErrInvalidTimeOfDay
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, ErrInvalidTimeOfDay
		}
		values[i] = v
	}

	h, m, sec := values[0], values[1], values[2]
	if m > 59 || sec > 59 || h > 24 || (h == 24 && (m != 0 || sec != 0)) {
		return 0, ErrInvalidTimeOfDay
	}

	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// MustParseTimeOfDay panics on malformed input. Intended for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes returns the whole minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t) / 60
}

// String formats as zero-padded HH:MM:SS.
func (t TimeOfDay) String() string {
	v := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", v/3600, (v%3600)/60, v%60)
}

// NormalizeTimeOfDay rewrites HH:MM or HH:MM:SS into HH:MM:SS.
func NormalizeTimeOfDay(s string) (string, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// ParseCivilDate parses YYYY-MM-DD into a UTC-midnight value suitable for DATE columns.
func ParseCivilDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// Zone is the single civil timezone the clinic operates in.
type Zone struct {
	loc *time.Location
}

// NewZone loads an IANA zone such as "Asia/Ho_Chi_Minh".
func NewZone(name string) (*Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load clinic timezone %q: %w", name, err)
	}
	return &Zone{loc: loc}, nil
}

// NewZoneFromLocation wraps an already loaded location.
func NewZoneFromLocation(loc *time.Location) *Zone {
	return &Zone{loc: loc}
}

func (z *Zone) Location() *time.Location {
	return z.loc
}

func (z *Zone) String() string {
	return z.loc.String()
}

// CivilDate returns the clinic calendar day of an instant as YYYY-MM-DD.
func (z *Zone) CivilDate(t time.Time) string {
	return t.In(z.loc).Format(DateLayout)
}

// TimeOfDay returns the clinic wall-clock time of an instant.
func (z *Zone) TimeOfDay(t time.Time) TimeOfDay {
	local := t.In(z.loc)
	return TimeOfDay(local.Hour()*3600 + local.Minute()*60 + local.Second())
}

// DayBounds returns the first and last instant of a clinic calendar day.
func (z *Zone) DayBounds(date string) (time.Time, time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), z.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	n := now.With(d)
	return n.BeginningOfDay(), n.EndOfDay(), nil
}

// ParseInstant parses an ISO-8601 instant. Input without an offset is read as clinic
// wall-clock time.
func (z *Zone) ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, z.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidInstant
}

// Window is a requested interval projected onto the clinic calendar.
type Window struct {
	Date  string
	Start time.Time
	End   time.Time

	// Offsets from the civil midnight of Date. EndOffset exceeds 24h when the
	// interval crosses midnight so it can never be covered by a same-day shift.
	StartOffset TimeOfDay
	EndOffset   TimeOfDay
}

// Window projects [start, start+d) onto the clinic calendar day of start.
func (z *Zone) Window(start time.Time, d time.Duration) Window {
	end := start.Add(d)
	date := z.CivilDate(start)

	endOffset := z.TimeOfDay(end)
	if days := civilDaysBetween(date, z.CivilDate(end)); days > 0 {
		endOffset += TimeOfDay(days * secondsPerDay)
	}

	return Window{
		Date:        date,
		Start:       start,
		End:         end,
		StartOffset: z.TimeOfDay(start),
		EndOffset:   endOffset,
	}
}

func civilDaysBetween(from, to string) int {
	a, errA := time.Parse(DateLayout, from)
	b, errB := time.Parse(DateLayout, to)
	if errA != nil || errB != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Date is a civil date (no time-of-day) serialized as YYYY-MM-DD.
// Fact and Record publish dates are civil dates; presentation formatting
// (M/D markers) belongs to the renderer.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a timestamp to its civil date in the timestamp's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, eris.Wrapf(err, "model: parse date %q", s)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns the date as a UTC midnight timestamp.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string. The zero date
// encodes as null so it survives a round trip; "0000-00-00" would not parse
// back.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD, optionally with a trailing time component
// which is discarded.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// QuarterOf returns the calendar-quarter label for a timestamp, e.g. "2026 Q1".
// Quarters are calendar quarters (Q1 = Jan-Mar) regardless of fiscal calendars.
func QuarterOf(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d Q%d", t.Year(), q)
}

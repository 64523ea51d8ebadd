// Package calendar converts instants to local civil dates in the calendar the
// workshop keeps its books in.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

var ErrInvalidDate = errors.New("invalid date")

type Calendar interface {
	// Date returns the civil date of t in t's location.
	Date(t time.Time) (year, month, day int)
	// Midnight returns the instant a civil date starts in loc.
	Midnight(year, month, day int, loc *time.Location) (time.Time, error)
	Name() string
}

// New returns the calendar with the given name.
func New(name string) (Calendar, error) {
	switch strings.ToLower(name) {
	case "", "gregorian":
		return Gregorian{}, nil
	case "jalali", "persian", "solar_hijri":
		return Jalali{}, nil
	default:
		return nil, fmt.Errorf("unknown calendar %q", name)
	}
}

type Gregorian struct{}

func (Gregorian) Name() string { return "gregorian" }

func (Gregorian) Date(t time.Time) (int, int, int) {
	y, m, d := t.Date()
	return y, int(m), d
}

func (Gregorian) Midnight(year, month, day int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if y, m, d := t.Date(); y != year || int(m) != month || d != day {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Jalali is the Solar Hijri calendar.
type Jalali struct{}

func (Jalali) Name() string { return "jalali" }

func (Jalali) Date(t time.Time) (int, int, int) {
	pt := ptime.New(t)
	return pt.Year(), int(pt.Month()), pt.Day()
}

func (j Jalali) Midnight(year, month, day int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDate
	}
	t := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, loc).Time()
	if y, m, d := j.Date(t); y != year || m != month || d != day {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Format renders t as YYYY-MM-DD in c.
func Format(c Calendar, t time.Time) string {
	y, m, d := c.Date(t)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// Parse reads YYYY-MM-DD or YYYY/MM/DD in c and returns local midnight.
func Parse(c Calendar, s string, loc *time.Location) (time.Time, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "-")

	var y, m, d int
	n, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d)
	if err != nil || n != 3 || len(strings.Split(s, "-")) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	t, err := c.Midnight(y, m, d, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", err, s)
	}
	return t, nil
}

/*
Package clock interprets auction end times, which the marketplace publishes as
civil time at a fixed UTC offset, and renders the time left until them.
*/
package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ended is what FormatDuration returns once an auction has closed.
const Ended = "ended"

var ErrBadTimestamp = errors.New("malformed auction timestamp")

// The API omits the zone marker. Fractional seconds are accepted after the
// seconds field by time.Parse even though the layouts do not spell them out.
var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Clock reading end times at the given offset east of UTC.
func New(offset time.Duration) *Clock {
	return &Clock{
		loc: time.FixedZone(zoneName(offset), int(offset/time.Second)),
		now: time.Now,
	}
}

// WithNow returns a copy of c that uses fn as its time source.
func (c *Clock) WithNow(fn func() time.Time) *Clock {
	cp := *c
	cp.now = fn
	return &cp
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) Parse(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, trimmed, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

func (c *Clock) Remaining(endTime string) (time.Duration, error) {
	end, err := c.Parse(endTime)
	if err != nil {
		return 0, err
	}
	return end.Sub(c.Now()), nil
}

func (c *Clock) FormatRemaining(endTime string) (string, error) {
	d, err := c.Remaining(endTime)
	if err != nil {
		return "", err
	}
	return FormatDuration(d), nil
}

func (c *Clock) IsEndingSoon(endTime string, threshold time.Duration) (bool, error) {
	d, err := c.Remaining(endTime)
	if err != nil {
		return false, err
	}
	return EndingSoon(d, threshold), nil
}

// FormatDuration renders d with at most three units, largest first, truncating
// toward zero. Seconds are never shown.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return Ended
	}

	days := d / (24 * time.Hour)
	hours := (d % (24 * time.Hour)) / time.Hour
	minutes := (d % time.Hour) / time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// EndingSoon reports whether an auction with the given time left is inside the
// alert window. Closed auctions are never ending soon.
func EndingSoon(remaining, threshold time.Duration) bool {
	return remaining > 0 && remaining <= threshold
}

func zoneName(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/time.Hour, (offset%time.Hour)/time.Minute)
}

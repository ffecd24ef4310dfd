package sched

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// ErrInvalidDuration is returned for zero or negative countdowns.
var ErrInvalidDuration = errors.New("duration must be greater than zero")

// CountdownTarget resolves a countdown duration against now.
func CountdownTarget(now time.Time, d time.Duration) (time.Time, error) {
	if d <= 0 {
		return time.Time{}, ErrInvalidDuration
	}
	return now.Add(d), nil
}

// ParseClock parses a strict 24h "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	hour, err = parseClockField(parts[0], 23)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	minute, err = parseClockField(parts[1], 59)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	return hour, minute, nil
}

func parseClockField(s string, max int) (int, error) {
	if len(s) < 1 || len(s) > 2 {
		return 0, errors.New("bad width")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("bad digit")
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n > max {
		return 0, errors.New("out of range")
	}
	return n, nil
}

// NextAt resolves the next wall-clock occurrence of hour:minute that is
// strictly after now. A time equal to or earlier than the current
// minute rolls over to tomorrow. The result is aligned to :00 seconds.
func NextAt(now time.Time, hour, minute int) (time.Time, error) {
	expr := fmt.Sprintf("%d %d * * *", minute, hour)
	next, err := gronx.NextTickAfter(expr, now, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve %02d:%02d: %w", hour, minute, err)
	}
	return next, nil
}

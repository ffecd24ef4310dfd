package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nodoff/nodoff/internal/sched"
)

// parseCountdown validates and parses an --in value. Bare integers are
// read as minutes, anything else must be a Go duration string.
// Returns the parsed duration or an error with the expected format.
func parseCountdown(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("error: invalid --in duration, expected formats like 45, 90s or 1h30m")
	}
	var d time.Duration
	if mins, err := strconv.Atoi(value); err == nil {
		d = time.Duration(mins) * time.Minute
	} else {
		d, err = time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("error: invalid --in duration, expected formats like 45, 90s or 1h30m")
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("error: --in duration must be positive, got %q", value)
	}
	return d, nil
}

// validateClock checks that an --at value is a 24h HH:MM clock time.
func validateClock(value string) error {
	if _, _, err := sched.ParseClock(value); err != nil {
		return fmt.Errorf("error: invalid --at time %q, expected 24h HH:MM", value)
	}
	return nil
}

// validateStartExclusion checks that --in and --at are not both set.
// Returns an error if both are non-empty.
func validateStartExclusion(in, at string) error {
	if in != "" && at != "" {
		return fmt.Errorf("error: flags --in and --at are mutually exclusive")
	}
	return nil
}

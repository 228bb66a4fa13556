package reportdef

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var intervalPattern = regexp.MustCompile(`^(\d+)(s|m|h|d)$`)

// dateLayout is the format accepted for spec.referenceDate.
const dateLayout = "2006-01-02"

// ParseInterval parses refresh interval strings like "30s", "5m", "1h", "1d".
func ParseInterval(s string) (time.Duration, error) {
	matches := intervalPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid interval format: %s", s)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interval value: %s", s)
	}

	switch matches[2] {
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown interval unit: %s", matches[2])
	}
}

// ReferenceDate resolves the definition's reference date, falling back to
// the given clock value when the definition does not pin one.
func (r *Report) ReferenceDate(now time.Time) (time.Time, error) {
	if r.Spec.ReferenceDate == "" {
		return now, nil
	}
	t, err := time.Parse(dateLayout, r.Spec.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid referenceDate %q: %w", r.Spec.ReferenceDate, err)
	}
	return t, nil
}

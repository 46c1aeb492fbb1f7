package expense

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Timestamps keep their own offset, so the
// calendar date is the one the caller wrote, not its UTC or local equivalent.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
}

// ParseDate interprets s as a timezone-naive calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD or RFC 3339", ErrValidation, s)
}

// YearMonthOf formats the yearMonth key of t as YYYY-MM.
func YearMonthOf(t time.Time) string {
	return FormatYearMonth(t.Year(), t.Month())
}

// FormatYearMonth renders a four-digit year and zero-padded 1-based month.
func FormatYearMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseYearMonth builds the yearMonth key from raw year and month query values.
// The month may be given with or without zero padding.
func ParseYearMonth(year, month string) (string, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return "", fmt.Errorf("%w: invalid year %q", ErrValidation, year)
	}

	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return "", fmt.Errorf("%w: invalid month %q", ErrValidation, month)
	}

	return FormatYearMonth(y, time.Month(m)), nil
}

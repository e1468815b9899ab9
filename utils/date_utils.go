package utils

import "time"

const DATE_LAYOUT = "2006-01-02"

func IsValidDate(dateStr string) bool {
	if dateStr == "" {
		return false
	}

	formats := []string{
		DATE_LAYOUT,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-07:00",
		time.RFC3339,
	}

	for _, format := range formats {
		if _, err := time.Parse(format, dateStr); err == nil {
			return true
		}
	}

	return false
}

// DateRangeOrDefault parses the from/to parameters, falling back to the last
// defaultDays days through today when a bound is missing or malformed.
func DateRangeOrDefault(from, to string, defaultDays int) (time.Time, time.Time) {
	end := time.Now().Truncate(24 * time.Hour)
	if parsed, err := time.Parse(DATE_LAYOUT, to); err == nil {
		end = parsed
	}

	start := end.AddDate(0, 0, -defaultDays)
	if parsed, err := time.Parse(DATE_LAYOUT, from); err == nil {
		start = parsed
	}

	return start, end
}

package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var weekdayNames = map[string]int{
	"sun":       0,
	"sunday":    0,
	"mon":       1,
	"monday":    1,
	"tue":       2,
	"tuesday":   2,
	"wed":       3,
	"wednesday": 3,
	"thu":       4,
	"thursday":  4,
	"fri":       5,
	"friday":    5,
	"sat":       6,
	"saturday":  6,
}

// ShortWeekdays holds the three-letter labels indexed by weekday number.
var ShortWeekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseWeekdays parses a comma-separated list of weekdays into sorted, unique
// weekday numbers. Accepts names, three-letter abbreviations, numbers 0-6, and
// the shorthands "daily", "weekdays" and "weekends".
func ParseWeekdays(s string) ([]int, error) {
	seen := make(map[int]bool)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		switch part {
		case "daily", "everyday":
			for d := 0; d < 7; d++ {
				seen[d] = true
			}
			continue
		case "weekdays":
			for d := 1; d <= 5; d++ {
				seen[d] = true
			}
			continue
		case "weekends":
			seen[0] = true
			seen[6] = true
			continue
		}
		if d, ok := weekdayNames[part]; ok {
			seen[d] = true
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		seen[num] = true
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}

	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days, nil
}

// FormatWeekdays renders weekday numbers for display, e.g. "Mon,Wed,Fri" or "daily".
func FormatWeekdays(days []int) string {
	if len(days) == 7 {
		return "daily"
	}
	labels := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < 7 {
			labels = append(labels, ShortWeekdays[d])
		} else {
			labels = append(labels, strconv.Itoa(d))
		}
	}
	return strings.Join(labels, ",")
}

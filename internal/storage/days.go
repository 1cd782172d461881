package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeDays serializes weekday numbers for text columns, e.g. "1,3,5".
func EncodeDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// DecodeDays parses the output of EncodeDays.
func DecodeDays(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid target day %q: %w", p, err)
		}
		days = append(days, d)
	}
	return days, nil
}

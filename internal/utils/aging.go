package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAgingBuckets are the widths, in days, of the overdue aging buckets.
var DefaultAgingBuckets = []int{30, 30, 30}

// ParseBucketWidths parses a comma-separated list of positive day widths such as "30,30,30".
// An empty string yields nil so callers can apply their default.
func ParseBucketWidths(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	widths := make([]int, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid bucket width %q: %w", p, err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("bucket width must be positive, got %d", w)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

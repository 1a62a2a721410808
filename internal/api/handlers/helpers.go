package handlers

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// parseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', expected RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

// validAmount rejects NaN/Inf and negative values; strictly positive when
// the field represents a charge.
func validAmount(value float64, strict bool) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("amount must be a finite number")
	}
	if strict && value <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if !strict && value < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	return nil
}

// splitIDs parses the ?ids=a,b,c form of the internal bulk endpoints,
// dropping empty segments.
func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

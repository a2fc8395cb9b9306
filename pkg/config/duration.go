package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, d)
	}
	return nil
}

// ValidateDurationRange checks min <= d <= max.
func ValidateDurationRange(name string, d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("%s: invalid range, min %v is greater than max %v", name, min, max)
	}
	if d < min || d > max {
		return fmt.Errorf("%s must be between %v and %v, got %v", name, min, max, d)
	}
	return nil
}

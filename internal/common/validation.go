package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// zipPattern accepts a 5-digit ZIP or ZIP+4.
var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidateZipFormat checks that a ZIP string is syntactically a US ZIP
// code (5-digit or ZIP+4) and returns the 5-digit base used for
// lookups.
func ValidateZipFormat(zip string) (string, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return "", fmt.Errorf("zip code is required")
	}
	if !zipPattern.MatchString(zip) {
		return "", fmt.Errorf("zip code must be 5 digits or ZIP+4")
	}
	return zip[:5], nil
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid UUID format", fieldName)
	}
	return id, nil
}

// ValidatePositiveInteger validates positive integer values with an upper bound
func ValidatePositiveInteger(value int, fieldName string, max int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be greater than 0", fieldName)
	}
	if max > 0 && value > max {
		return fmt.Errorf("%s must not exceed %d", fieldName, max)
	}
	return nil
}

// ValidatePositiveFloat validates positive float values with an upper bound
func ValidatePositiveFloat(value float64, fieldName string, max float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be greater than 0", fieldName)
	}
	if max > 0 && value > max {
		return fmt.Errorf("%s must not exceed %.2f", fieldName, max)
	}
	return nil
}

// ValidateDateFormat checks a YYYY-MM-DD date string.
func ValidateDateFormat(value string, fieldName string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return nil
}

// SafeString dereferences a string pointer, returning "" for nil.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

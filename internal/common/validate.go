package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateUUID validates a path or payload identifier.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, InvalidInputError(fmt.Sprintf("%s is required", fieldName))
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, InvalidInputError(fmt.Sprintf("%s is not a valid UUID", fieldName))
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return InvalidInputError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateNonNegativeInt rejects negative quantities and levels.
func ValidateNonNegativeInt(value int, fieldName string) error {
	if value < 0 {
		return InvalidInputError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidatePositiveInt rejects zero and negative values.
func ValidatePositiveInt(value int, fieldName string) error {
	if value <= 0 {
		return InvalidInputError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegativeFloat rejects negative prices and rates.
func ValidateNonNegativeFloat(value float64, fieldName string) error {
	if value < 0 {
		return InvalidInputError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateDate parses YYYY-MM-DD date strings.
func ValidateDate(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, InvalidInputError(fmt.Sprintf("%s must be in YYYY-MM-DD format", fieldName))
	}
	return date, nil
}

var gstPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[0-9A-Z]{1}[A-Z]{1}[0-9A-Z]{1}$`)

// ValidateGSTNumber validates the 15-character GST registration format.
func ValidateGSTNumber(gst, fieldName string) error {
	gst = strings.TrimSpace(gst)
	if len(gst) != 15 || !gstPattern.MatchString(gst) {
		return InvalidInputError(fmt.Sprintf("%s has invalid GST format", fieldName))
	}
	return nil
}

// SafeString dereferences optional string fields.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 dereferences optional float fields.
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

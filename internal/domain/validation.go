package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxReferenceLength   = 255
	MaxJournalLines      = 100
	MinVoucherEntries    = 2
)

// currencyPattern matches a three-letter currency code.
var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ValidCurrencyCode reports whether code is exactly three ASCII letters.
func ValidCurrencyCode(code string) bool {
	return currencyPattern.MatchString(code)
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateDescription checks the free-text description length cap.
func ValidateDescription(s string) error {
	if len(s) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, MaxDescriptionLength)
	}

	return nil
}

// ValidateReference checks the free-text reference length cap.
func ValidateReference(s string) error {
	if len(s) > MaxReferenceLength {
		return fmt.Errorf("%w: reference exceeds %d characters", ErrInvalidInput, MaxReferenceLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

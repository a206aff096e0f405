package domain

import (
	"regexp"
	"strings"
)

const FundIdentifierLength = 12

var fundIdentifierPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// NormalizeFundIdentifier trims whitespace and upper-cases user input.
// It does not validate.
func NormalizeFundIdentifier(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func ValidateFundIdentifier(id string) error {
	if len(id) != FundIdentifierLength {
		return &InvalidIdentifierError{
			Identifier: id,
			Reason:     "must be exactly 12 characters",
		}
	}
	if !fundIdentifierPattern.MatchString(id) {
		return &InvalidIdentifierError{
			Identifier: id,
			Reason:     "must be two letters, nine letters or digits, and a check digit",
		}
	}
	return nil
}

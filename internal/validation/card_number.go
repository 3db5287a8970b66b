// Package validation holds the input checks that run before the ledger
// is invoked.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Card number prefixes accepted from the identification channel.
var ValidCardPrefixes = []string{"CARD", "GIFT", "DISC"}

const minCardNumberLength = 6

var (
	ErrCardNumberTooShort = fmt.Errorf("card number must be at least %d characters", minCardNumberLength)
	ErrCardNumberCharset  = errors.New("card number may contain only letters, digits and hyphens")
	ErrCardNumberPrefix   = fmt.Errorf("card number must start with %s", strings.Join(ValidCardPrefixes, ", "))
)

// NormalizeCardNumber trims and upper-cases a scanned or typed number.
func NormalizeCardNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateCardNumber checks the format of a candidate card number. It is
// a pure format check and says nothing about existence in the store.
func ValidateCardNumber(cardNumber string) error {
	if len(cardNumber) < minCardNumberLength {
		return ErrCardNumberTooShort
	}
	for _, r := range cardNumber {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return ErrCardNumberCharset
		}
	}
	upper := strings.ToUpper(cardNumber)
	for _, prefix := range ValidCardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return nil
		}
	}
	return ErrCardNumberPrefix
}

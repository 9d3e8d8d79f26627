package domain

import "fmt"

// ValidateCurrency checks a currency code is three uppercase letters
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}
	return nil
}

func rowError(kind string, id int32, reason string) error {
	return fmt.Errorf("%w: %s %d: %s", ErrInvalidRow, kind, id, reason)
}

package models

import "regexp"

var priceRegex = regexp.MustCompile(`^\d{1,9}(\.\d{1,2})?$`)

// IsValidPrice reports whether s is a non-negative decimal with at most two fraction digits.
func IsValidPrice(s string) bool {
	return priceRegex.MatchString(s)
}

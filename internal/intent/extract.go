package intent

import (
	"regexp"
	"strings"
)

// orderIDPattern matches an order identifier: the letter O followed by one
// or more digits. Matching is done on the uppercased message, so "o7" and
// "O7" both hit.
var orderIDPattern = regexp.MustCompile(`O\d+`)

// ExtractOrderID scans message for the first order identifier token and
// returns it normalized to upper case. The second return is false when no
// identifier is present. Pure and deterministic.
func ExtractOrderID(message string) (string, bool) {
	match := orderIDPattern.FindString(strings.ToUpper(message))
	if match == "" {
		return "", false
	}
	return match, true
}

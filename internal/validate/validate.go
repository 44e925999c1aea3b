package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Allowed character set for identity fields: letters and digits in any
// script, '_', whitespace, '@', '.' and '-'. Everything else is stripped
// before the value reaches the store.
var disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s@.\-]`)

// Field length caps, matching the store columns.
const (
	MaxUsernameLen = 100
	MaxEmailLen    = 255
)

// Sanitize strips every character outside the allowed set and trims the
// surrounding whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(disallowed.ReplaceAllString(s, ""))
}

// Username sanitizes a username and enforces its contract: non-empty after
// sanitization, at most MaxUsernameLen characters.
func Username(s string) (string, error) {
	v := Sanitize(s)
	if v == "" {
		return "", fmt.Errorf("username is empty after sanitization")
	}
	if len(v) > MaxUsernameLen {
		return "", fmt.Errorf("username exceeds %d characters", MaxUsernameLen)
	}
	return v, nil
}

// Email sanitizes an email address and enforces its contract: non-empty after
// sanitization, at most MaxEmailLen characters, exactly one '@'.
func Email(s string) (string, error) {
	v := Sanitize(s)
	if v == "" {
		return "", fmt.Errorf("email is empty after sanitization")
	}
	if len(v) > MaxEmailLen {
		return "", fmt.Errorf("email exceeds %d characters", MaxEmailLen)
	}
	if strings.Count(v, "@") != 1 {
		return "", fmt.Errorf("email is malformed")
	}
	return v, nil
}

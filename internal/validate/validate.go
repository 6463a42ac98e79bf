package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reUsername = regexp.MustCompile(`^[a-z0-9_.-]{2,30}$`)
	reRoles    = regexp.MustCompile(`^(admin|waiter|kitchen)(,(admin|waiter|kitchen))*$`)
)

// ID parses a positive integer identifier from a route parameter.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Qty parses an item quantity; clamps at a sane upper bound to avoid abuse.
func Qty(n int) (int, bool) {
	if n < 1 {
		return 0, false
	}
	if n > 50 {
		return 50, true
	}
	return n, true
}

// People validates a party size for a table.
func People(n int) bool { return n >= 1 && n <= 30 }

// Username validates a login handle.
func Username(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reUsername.MatchString(s)
}

// Roles validates a comma-separated role list.
func Roles(s string) (string, bool) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	return s, reRoles.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces a minimal complexity window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

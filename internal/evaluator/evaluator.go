// Package evaluator decides whether a resolved current value satisfies a
// rule's human-authored expected value. Expected values come in a handful of
// notations ("Enabled", "24 or more password(s)", "5 or fewer invalid logon
// attempt(s), but not 0", bare integers, verbatim strings); the forms are
// tried in a fixed order and the first one that applies wins.
package evaluator

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	orMorePattern         = regexp.MustCompile(`^(\d+) or more\b`)
	orFewerNotZeroPattern = regexp.MustCompile(`^(\d+) or fewer\b.*\bbut not 0\b`)
	orFewerPattern        = regexp.MustCompile(`^(\d+) or fewer\b`)
	bareIntegerPattern    = regexp.MustCompile(`^\d+$`)
)

// Evaluate reports whether current satisfies expected. It is total and
// deterministic: any pair of strings yields a boolean, never a panic. A form
// whose numbers fail to parse is treated as not matching and the next form is
// tried.
func Evaluate(current, expected string) bool {
	current = strings.TrimSpace(current)
	expected = strings.TrimSpace(expected)

	// Fast path: verbatim match.
	if strings.EqualFold(current, expected) {
		return true
	}

	// Enabled/Disabled map onto the "1"/"0" values registry and secedit
	// exports carry. Nothing but exactly "1" counts as enabled.
	if strings.EqualFold(expected, "Enabled") {
		return current == "1"
	}
	if strings.EqualFold(expected, "Disabled") {
		return current == "0"
	}

	if m := orMorePattern.FindStringSubmatch(expected); m != nil {
		if limit, cur, ok := parsePair(m[1], current); ok {
			return cur >= limit
		}
	}

	// "but not 0" is stricter than plain "or fewer": zero must fail even
	// though it is below the limit.
	if m := orFewerNotZeroPattern.FindStringSubmatch(expected); m != nil {
		if limit, cur, ok := parsePair(m[1], current); ok {
			return cur > 0 && cur <= limit
		}
	}

	if m := orFewerPattern.FindStringSubmatch(expected); m != nil {
		if limit, cur, ok := parsePair(m[1], current); ok {
			return cur <= limit
		}
	}

	if bareIntegerPattern.MatchString(expected) {
		if want, cur, ok := parsePair(expected, current); ok {
			return cur == want
		}
	}

	// Exact equality was already tried, so an expected value no form claims
	// is simply not satisfied.
	return false
}

func parsePair(expected, current string) (int, int, bool) {
	limit, err := strconv.Atoi(expected)
	if err != nil {
		return 0, 0, false
	}
	cur, err := strconv.Atoi(strings.TrimSpace(current))
	if err != nil {
		return 0, 0, false
	}
	return limit, cur, true
}

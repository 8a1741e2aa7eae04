package scenario

import (
	"fmt"

	"github.com/roach88/altercycle/ring"
)

// AssertionError is returned when an assertion fails. It carries the
// expected and actual outcomes in human-readable form so a failing
// scenario reads like a report, not a stack trace.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s\n  expected: %s\n  actual: %s", e.Type, e.Expected, e.Actual)
}

func fail(typ, expectedFmt string, expected any, actualFmt string, actual any) *AssertionError {
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf(expectedFmt, expected),
		Actual:   fmt.Sprintf(actualFmt, actual),
	}
}

// check evaluates one assertion against the final ring.
func check(r *ring.Ring[string], a Assertion) error {
	switch a.Type {
	case "sequence_valid":
		valid, err := r.ValidateSequence()
		if err != nil {
			return fmt.Errorf("sequence_valid: %w", err)
		}
		if valid != a.Expect {
			return fail("sequence_valid", "%v", a.Expect, "%v", valid)
		}
	case "violation_count":
		if got := len(r.Violations()); got != a.Count {
			return fail("violation_count", "%d violations", a.Count, "%d", got)
		}
	case "history_count":
		if got := len(r.History()); got != a.Count {
			return fail("history_count", "%d records", a.Count, "%d", got)
		}
	case "ring_len":
		if got := r.Len(); got != a.Count {
			return fail("ring_len", "%d nodes", a.Count, "%d", got)
		}
	case "pattern_count":
		patterns, err := r.FindPatterns(ring.PatternOptions{
			Length:             a.Length,
			RequireAlternation: a.RequireAlternation,
		})
		if err != nil {
			return fmt.Errorf("pattern_count: %w", err)
		}
		if got := len(patterns); got != a.Count {
			return fail("pattern_count", "%d patterns", a.Count, "%d", got)
		}
	case "palindrome_contains":
		matches, err := r.FindPalindromes(ring.PalindromeOptions[string]{MinLength: a.MinLength})
		if err != nil {
			return fmt.Errorf("palindrome_contains: %w", err)
		}
		want := ring.PalindromeMatch{Start: a.Start, Length: a.MatchLength}
		for _, m := range matches {
			if m == want {
				return nil
			}
		}
		return fail("palindrome_contains", "match %+v", want, "matches %+v", matches)
	case "render":
		if got := r.String(); got != a.Render {
			return fail("render", "%s", a.Render, "%s", got)
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
